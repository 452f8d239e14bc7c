package facade

import (
	"math"
	"sync"

	"github.com/mirstar13/spatialbvh/bvh"
	"github.com/mirstar13/spatialbvh/vecmath"
)

// Collider is anything a Facade can track in its spatial index
// (SPEC_FULL.md §4.6).
type Collider interface {
	WorldBounds() bvh.AABB
	IsEnabled() bool
}

// Facade owns a bvh.Tree and the bookkeeping needed to keep it current as
// a scene graph's colliders move, without the caller having to manage
// Update/Refit/Rebuild calls directly.
type Facade struct {
	mu   sync.Mutex
	tree *bvh.Tree

	buildStrategy     bvh.BuildStrategy
	autoUpdate        bool
	updateInterval    uint32
	dirtyRebuildRatio float64

	colliders map[int64]Collider
	dirty     map[int64]bool
	tickCount uint32
}

// New constructs a Facade with its own empty Tree.
func New(opts ...Option) *Facade {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Facade{
		tree:              bvh.New(bvh.WithMaxLeafSize(cfg.maxLeafSize), bvh.WithMaxDepth(cfg.maxDepth)),
		buildStrategy:     cfg.buildStrategy,
		autoUpdate:        cfg.autoUpdate,
		updateInterval:    cfg.updateInterval,
		dirtyRebuildRatio: cfg.dirtyRebuildRatio,
		colliders:         make(map[int64]Collider),
		dirty:             make(map[int64]bool),
	}
}

// Register adds c to the spatial index and returns its object id.
func (f *Facade) Register(c Collider) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.tree.Insert(c.WorldBounds(), c)
	f.colliders[id] = c
	return id
}

// Unregister removes a previously-registered collider.
func (f *Facade) Unregister(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.colliders[id]; !ok {
		return ErrNotRegistered
	}
	delete(f.colliders, id)
	delete(f.dirty, id)
	return f.tree.Remove(id)
}

// MarkDirty flags a registered collider as needing its bounds refreshed
// on the next scheduled maintenance pass.
func (f *Facade) MarkDirty(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.colliders[id]; ok {
		f.dirty[id] = true
	}
}

// Tick advances the facade's internal schedule by one step and, every
// update_interval ticks, runs Maintain. Disabled entirely when
// WithAutoUpdate(false) was used at construction.
func (f *Facade) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.autoUpdate {
		return
	}
	f.tickCount++
	if f.tickCount%f.updateInterval != 0 {
		return
	}
	f.maintainLocked()
}

// Maintain runs one maintenance pass immediately, regardless of the
// facade's schedule: if the fraction of dirty colliders exceeds
// dirty_rebuild_ratio, the whole tree is rebuilt (refreshing every
// collider's bounds first); otherwise only the dirty colliders are
// updated in place, followed by one Refit.
func (f *Facade) Maintain() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maintainLocked()
}

func (f *Facade) maintainLocked() {
	if len(f.dirty) == 0 {
		return
	}

	if len(f.colliders) > 0 && float64(len(f.dirty))/float64(len(f.colliders)) > f.dirtyRebuildRatio {
		f.rebuildLocked()
		return
	}

	for id := range f.dirty {
		c, ok := f.colliders[id]
		if !ok {
			continue
		}
		_ = f.tree.Update(id, c.WorldBounds())
	}
	f.tree.Refit()
	f.dirty = make(map[int64]bool)
}

func (f *Facade) rebuildLocked() {
	for id, c := range f.colliders {
		_ = f.tree.Update(id, c.WorldBounds())
	}
	f.tree.Rebuild(f.buildStrategy)
	f.dirty = make(map[int64]bool)
}

// Raycast returns every enabled collider a ray intersects within
// [0, maxDistance] (+Inf means unlimited), sorted ascending by Distance.
func (f *Facade) Raycast(ray bvh.Ray, maxDistance float64) []bvh.RaycastHit {
	f.mu.Lock()
	defer f.mu.Unlock()

	hits := f.tree.Raycast(ray, maxDistance)
	var filtered []bvh.RaycastHit
	for _, h := range hits {
		if c, ok := h.Payload.(Collider); ok && c.IsEnabled() {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// RaycastFirst returns the closest enabled collider a ray intersects
// within [0, maxDistance] (+Inf means unlimited).
func (f *Facade) RaycastFirst(ray bvh.Ray, maxDistance float64) (bvh.RaycastHit, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var best bvh.RaycastHit
	haveBest := false
	for _, h := range f.tree.Raycast(ray, maxDistance) {
		c, ok := h.Payload.(Collider)
		if !ok || !c.IsEnabled() {
			continue
		}
		if !haveBest || h.Distance < best.Distance {
			best = h
			haveBest = true
		}
	}
	return best, haveBest
}

// QueryRange returns every enabled collider whose bounds overlap box —
// the facade's implementation of the intersect_bounds(box) operation,
// filtered by enabled state per is_enabled().
func (f *Facade) QueryRange(box bvh.AABB) []bvh.QueryResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	var filtered []bvh.QueryResult
	for _, r := range f.tree.QueryRange(box) {
		if c, ok := r.Payload.(Collider); ok && c.IsEnabled() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FindNearest returns the enabled collider closest to point, within
// maxDistance (maxDistance <= 0 means unlimited). Filtering by enabled
// state means the search can't rely on the tree's own pruned nearest-
// neighbor walk alone, so it scans every collider within the candidate
// range instead.
func (f *Facade) FindNearest(point vecmath.Vec3, maxDistance float64) (bvh.QueryResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	box := f.tree.Bounds()
	if maxDistance > 0 {
		box = bvh.NewAABB(
			vecmath.Vec3{X: point.X - maxDistance, Y: point.Y - maxDistance, Z: point.Z - maxDistance},
			vecmath.Vec3{X: point.X + maxDistance, Y: point.Y + maxDistance, Z: point.Z + maxDistance},
		)
	}

	bestDistSq := maxDistance * maxDistance
	if maxDistance <= 0 {
		bestDistSq = math.Inf(1)
	}

	var best bvh.QueryResult
	haveBest := false
	for _, cand := range f.tree.QueryRange(box) {
		c, ok := cand.Payload.(Collider)
		if !ok || !c.IsEnabled() {
			continue
		}
		distSq := cand.Bounds.ClosestPointDistanceSq(point)
		if distSq > bestDistSq {
			continue
		}
		best = cand
		bestDistSq = distSq
		haveBest = true
	}
	return best, haveBest
}

// Stats returns the underlying tree's shape statistics.
func (f *Facade) Stats() bvh.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Stats()
}

// NodeBoxes returns the bounds of every live node in the underlying tree,
// for callers that want to draw or inspect its structure directly (see
// cmd/bvhviewer).
func (f *Facade) NodeBoxes() []bvh.NodeBox {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.NodeBoxes()
}
