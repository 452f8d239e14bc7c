package bvh

// Insert adds a new object with the given world bounds and opaque payload,
// returning its object id (SPEC_FULL.md §4.3, "Insertion algorithm").
//
// Descent chooses the child whose bounds grow least to accommodate the new
// object, ties breaking left. A leaf reached at the bottom of the descent
// is split into two leaves ordered by the union's longest axis,
// smaller-midpoint-first, ties going left. An internal node reached at
// depth >= max_depth-1 force-splits at its chosen child instead of
// descending further, so descent never goes below that level. The tree's
// depth is not capped by max_depth: a forced split places the new leaf
// two levels below that node and pushes the chosen child's subtree one
// level deeper, so repeated forced splits keep deepening it.
func (t *Tree) Insert(bounds AABB, payload any) int64 {
	id := t.allocID()

	if t.IsEmpty() {
		leaf := t.arena.makeLeaf(bounds, id, payload, 0)
		t.root = leaf
		t.objectMap[id] = leaf
		t.count++
		return id
	}

	cur := t.root
	capSteps := int(t.maxDepth)*2 + 4
	for step := 0; step < capSteps; step++ {
		n := t.arena.get(cur)

		if n.isLeaf {
			newLeaf := t.splitLeaf(cur, bounds, id, payload)
			t.objectMap[id] = newLeaf
			t.count++
			t.arena.walkUpwardsRefit(cur)
			return id
		}

		if n.depth >= t.maxDepth-1 {
			newLeaf := t.forceSplitAtChild(cur, bounds, id, payload)
			t.objectMap[id] = newLeaf
			t.count++
			return id
		}

		cur = t.chooseChild(cur, bounds)
	}

	logger().Warn("bvh: insert hit descent safety cap; attaching near root",
		"object_id", id, "cap_steps", capSteps)
	newLeaf := t.forceAttachNearRoot(bounds, id, payload)
	t.objectMap[id] = newLeaf
	t.count++
	return id
}

// chooseChild returns the child of the internal node at idx that grows
// least to contain bounds, ties going left. A node with no right child
// always descends left.
func (t *Tree) chooseChild(idx int32, bounds AABB) int32 {
	n := t.arena.get(idx)
	leftBounds := t.arena.get(n.left).bounds
	if n.right == nilIndex {
		return n.left
	}
	rightBounds := t.arena.get(n.right).bounds

	leftGrowth := growthVolume(leftBounds, bounds) - leftBounds.Volume()
	rightGrowth := growthVolume(rightBounds, bounds) - rightBounds.Volume()
	if leftGrowth <= rightGrowth {
		return n.left
	}
	return n.right
}

// splitLeaf promotes the populated leaf at leafIdx into an internal node
// holding two fresh leaves: the leaf's existing object and the new one,
// ordered along the union's longest axis. leafIdx's own index is reused
// for the new internal node so its parent's child link needs no update.
// Returns the new leaf's index.
func (t *Tree) splitLeaf(leafIdx int32, newBounds AABB, newID int64, newPayload any) int32 {
	old := t.arena.get(leafIdx)
	oldBounds := old.bounds
	oldID := old.objectID
	oldPayload := old.payload
	depth := old.depth

	union := oldBounds.Union(newBounds)
	axis := union.LongestAxis()

	oldLeaf := t.arena.makeLeaf(oldBounds, oldID, oldPayload, depth+1)
	newLeaf := t.arena.makeLeaf(newBounds, newID, newPayload, depth+1)

	var left, right int32
	if oldBounds.Center().Axis(axis) <= newBounds.Center().Axis(axis) {
		left, right = oldLeaf, newLeaf
	} else {
		left, right = newLeaf, oldLeaf
	}

	t.objectMap[oldID] = oldLeaf
	t.arena.resetAsInternal(leafIdx, left, right)
	t.arena.get(leafIdx).bounds = union
	return newLeaf
}

// forceSplitAtChild handles an internal node reached at depth >=
// max_depth-1: instead of descending into the chosen child, it wraps
// that child's existing
// subtree and a fresh leaf for the new object under a new internal node
// that takes over the child's former slot. The existing subtree's depth
// field is bumped by one throughout to reflect its new position. Returns
// the new leaf's index.
func (t *Tree) forceSplitAtChild(cur int32, bounds AABB, id int64, payload any) int32 {
	childIdx := t.chooseChild(cur, bounds)
	childBounds := t.arena.get(childIdx).bounds
	originalDepth := t.arena.get(childIdx).depth
	leafDepth := originalDepth + 1

	newLeaf := t.arena.makeLeaf(bounds, id, payload, leafDepth)
	t.arena.bumpSubtreeDepth(childIdx, 1)

	union := childBounds.Union(bounds)
	axis := union.LongestAxis()
	var left, right int32
	if childBounds.Center().Axis(axis) <= bounds.Center().Axis(axis) {
		left, right = childIdx, newLeaf
	} else {
		left, right = newLeaf, childIdx
	}
	newInternal := t.arena.makeInternal(union, left, right, originalDepth)

	n := t.arena.get(cur)
	if n.left == childIdx {
		n.left = newInternal
	} else {
		n.right = newInternal
	}
	t.arena.get(newInternal).parent = cur

	t.arena.recomputeBoundsFromChildren(cur)
	t.arena.walkUpwardsRefit(cur)
	return newLeaf
}

// forceAttachNearRoot is the last-resort path when the descent safety cap
// is exhausted (a bug-report condition per SPEC_FULL.md §9, not a normal
// outcome): it wraps the current root and a fresh leaf for the new object
// under a new root, bumping the old root subtree's depth by one.
func (t *Tree) forceAttachNearRoot(bounds AABB, id int64, payload any) int32 {
	oldRoot := t.root
	newLeaf := t.arena.makeLeaf(bounds, id, payload, 0)
	t.arena.bumpSubtreeDepth(oldRoot, 1)

	union := t.arena.get(oldRoot).bounds.Union(bounds)
	newRoot := t.arena.makeInternal(union, oldRoot, newLeaf, 0)
	t.root = newRoot
	return newLeaf
}
