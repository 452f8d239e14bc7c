package bvh

// Rebuild discards the tree's current shape and reconstructs it from
// scratch over the same live objects, partitioned by strategy
// (SPEC_FULL.md §4.4). Object ids and payloads are preserved; next_id
// keeps counting monotonically from wherever it was — ids are never
// reused even across a rebuild.
func (t *Tree) Rebuild(strategy BuildStrategy) {
	items := t.collectLiveItems()
	t.buildFromItems(items, strategy)
}

// DefaultBuildStrategy returns BuildSAH if the tree was constructed (or
// last configured) with enable_sah set, BuildObjectMedian otherwise. It
// is the strategy RebuildDefault uses, and the one a caller wiring up
// scheduled maintenance (see facade.Facade) should default to absent a
// more specific choice.
func (t *Tree) DefaultBuildStrategy() BuildStrategy {
	if t.enableSAH {
		return BuildSAH
	}
	return BuildObjectMedian
}

// RebuildDefault rebuilds using DefaultBuildStrategy, for callers that
// don't need per-call strategy control.
func (t *Tree) RebuildDefault() {
	t.Rebuild(t.DefaultBuildStrategy())
}

// collectLiveItems walks the current tree and returns one buildItem per
// live leaf, via an explicit stack.
func (t *Tree) collectLiveItems() []buildItem {
	if t.IsEmpty() {
		return nil
	}
	items := make([]buildItem, 0, t.count)
	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(idx)
		if n.isLeaf {
			items = append(items, buildItem{
				bounds:   n.bounds,
				centroid: n.bounds.Center(),
				objectID: n.objectID,
				payload:  n.payload,
			})
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return items
}

// BuildInput is one (bounds, payload) pair supplied to Build.
type BuildInput struct {
	Bounds  AABB
	Payload any
}

// Build constructs a fresh Tree over items in a single batch pass instead
// of len(items) individual Insert calls (SPEC_FULL.md §4.4, "Batch
// builder"). Each item is assigned a fresh monotonically increasing
// object id in input order; the returned slice maps input index to id.
func Build(items []BuildInput, strategy BuildStrategy, opts ...Option) (*Tree, []int64) {
	t := New(opts...)
	ids := make([]int64, len(items))
	built := make([]buildItem, len(items))
	for i, it := range items {
		id := t.allocID()
		ids[i] = id
		built[i] = buildItem{
			bounds:   it.Bounds,
			centroid: it.Bounds.Center(),
			objectID: id,
			payload:  it.Payload,
		}
	}
	t.buildFromItems(built, strategy)
	return t, ids
}
