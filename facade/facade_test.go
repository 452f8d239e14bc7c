package facade

import (
	"math"
	"testing"

	"github.com/mirstar13/spatialbvh/bvh"
	"github.com/mirstar13/spatialbvh/vecmath"
)

type testCollider struct {
	bounds  bvh.AABB
	enabled bool
}

func (c *testCollider) WorldBounds() bvh.AABB { return c.bounds }
func (c *testCollider) IsEnabled() bool       { return c.enabled }

func box(cx, cy, cz, half float64) bvh.AABB {
	return bvh.NewAABB(
		vecmath.Vec3{X: cx - half, Y: cy - half, Z: cz - half},
		vecmath.Vec3{X: cx + half, Y: cy + half, Z: cz + half},
	)
}

func TestFacadeRegisterAndQuery(t *testing.T) {
	f := New()
	near := &testCollider{bounds: box(1, 0, 0, 0.5), enabled: true}
	far := &testCollider{bounds: box(100, 0, 0, 0.5), enabled: true}

	f.Register(near)
	f.Register(far)

	results := f.QueryRange(box(1, 0, 0, 2))
	if len(results) != 1 {
		t.Fatalf("QueryRange() found %d colliders, want 1", len(results))
	}
}

func TestFacadeFiltersDisabledColliders(t *testing.T) {
	f := New()
	disabled := &testCollider{bounds: box(0, 0, 0, 0.5), enabled: false}
	f.Register(disabled)

	if _, ok := f.FindNearest(vecmath.Vec3{}, 0); ok {
		t.Error("expected a disabled collider to be excluded from FindNearest")
	}
	if hits := f.Raycast(bvh.NewRay(vecmath.Vec3{X: -5}, vecmath.Vec3{X: 1}), math.Inf(1)); len(hits) != 0 {
		t.Errorf("expected a disabled collider to be excluded from Raycast, got %d hits", len(hits))
	}
}

func TestFacadeUnregisterRemovesCollider(t *testing.T) {
	f := New()
	c := &testCollider{bounds: box(0, 0, 0, 0.5), enabled: true}
	id := f.Register(c)

	if err := f.Unregister(id); err != nil {
		t.Fatalf("Unregister() error: %v", err)
	}
	if err := f.Unregister(id); err != ErrNotRegistered {
		t.Fatalf("second Unregister() error = %v, want ErrNotRegistered", err)
	}
}

func TestFacadeMaintainUpdatesDirtyColliderBounds(t *testing.T) {
	f := New(WithAutoUpdate(false))
	c := &testCollider{bounds: box(0, 0, 0, 0.5), enabled: true}
	id := f.Register(c)

	c.bounds = box(50, 0, 0, 0.5)
	f.MarkDirty(id)
	f.Maintain()

	results := f.QueryRange(box(50, 0, 0, 2))
	if len(results) != 1 {
		t.Fatalf("QueryRange() after Maintain found %d colliders at new position, want 1", len(results))
	}
}

func TestFacadeMaintainRebuildsPastDirtyRatio(t *testing.T) {
	f := New(WithAutoUpdate(false), WithDirtyRebuildRatio(0.3))
	var colliders []*testCollider
	var ids []int64
	for i := 0; i < 10; i++ {
		c := &testCollider{bounds: box(float64(i), 0, 0, 0.3), enabled: true}
		colliders = append(colliders, c)
		ids = append(ids, f.Register(c))
	}

	for i := 0; i < 5; i++ {
		colliders[i].bounds = box(float64(i)+100, 0, 0, 0.3)
		f.MarkDirty(ids[i])
	}
	f.Maintain()

	results := f.QueryRange(box(102, 0, 0, 2))
	if len(results) != 1 {
		t.Fatalf("QueryRange() after rebuild found %d colliders at moved position, want 1", len(results))
	}
}

func TestFacadeTickRespectsUpdateInterval(t *testing.T) {
	f := New(WithUpdateInterval(3))
	c := &testCollider{bounds: box(0, 0, 0, 0.5), enabled: true}
	id := f.Register(c)

	c.bounds = box(50, 0, 0, 0.5)
	f.MarkDirty(id)

	f.Tick()
	f.Tick()
	if results := f.QueryRange(box(50, 0, 0, 2)); len(results) != 0 {
		t.Fatal("expected maintenance to not have run yet before the third tick")
	}
	f.Tick()
	if results := f.QueryRange(box(50, 0, 0, 2)); len(results) != 1 {
		t.Fatal("expected maintenance to have run on the third tick")
	}
}

func TestInitActiveShutdown(t *testing.T) {
	if _, err := Active(); err != ErrNoActiveFacade {
		t.Fatalf("Active() before Init error = %v, want ErrNoActiveFacade", err)
	}

	f := Init()
	got, err := Active()
	if err != nil || got != f {
		t.Fatalf("Active() = %v, %v, want the facade returned by Init", got, err)
	}

	Shutdown()
	if _, err := Active(); err != ErrNoActiveFacade {
		t.Fatalf("Active() after Shutdown error = %v, want ErrNoActiveFacade", err)
	}
}
