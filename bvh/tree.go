package bvh

// Tree is a dynamic object-level bounding volume hierarchy over opaque
// payloads (SPEC_FULL.md §4.3). The zero value is not usable; construct
// with New.
type Tree struct {
	arena nodeArena
	root  int32

	maxLeafSize uint32
	maxDepth    uint32
	enableSAH   bool

	count     uint32
	objectMap map[int64]int32
	nextID    int64
}

// New constructs an empty Tree. Defaults match SPEC_FULL.md §3:
// max_leaf_size=8, max_depth=32, enable_sah=true.
func New(opts ...Option) *Tree {
	cfg := defaultTreeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tree{
		root:        nilIndex,
		maxLeafSize: cfg.maxLeafSize,
		maxDepth:    cfg.maxDepth,
		enableSAH:   cfg.enableSAH,
		objectMap:   make(map[int64]int32),
	}
}

// Count returns the number of leaves carrying a live payload.
func (t *Tree) Count() uint32 { return t.count }

// IsEmpty reports whether the tree holds no objects.
func (t *Tree) IsEmpty() bool { return t.root == nilIndex }

// Bounds returns the root's bounds, or the empty AABB if the tree is
// empty.
func (t *Tree) Bounds() AABB {
	if t.IsEmpty() {
		return EmptyAABB()
	}
	return t.arena.get(t.root).bounds
}

// Clear discards every node and payload reference, resetting the tree to
// empty. next_id is not reset: ids remain monotonically increasing across
// the tree's lifetime.
func (t *Tree) Clear() {
	t.arena.reset()
	t.root = nilIndex
	t.count = 0
	t.objectMap = make(map[int64]int32)
}

func (t *Tree) allocID() int64 {
	id := t.nextID
	t.nextID++
	return id
}
