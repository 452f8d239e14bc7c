// Package facade wires a bvh.Tree to a scene graph's collider set: each
// collider registers once, flags itself dirty when it moves, and a
// scheduled Tick decides per update whether to refresh-in-place (Update +
// Refit) or fall back to a full Rebuild once enough colliders have moved
// at once (SPEC_FULL.md §4.6). It owns no rendering or physics state —
// only the spatial index and the bookkeeping needed to keep it current.
package facade
