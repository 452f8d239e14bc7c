// Package bvh implements the spatial acceleration core: axis-aligned
// bounding box kernels, a dynamic object-level bounding volume hierarchy
// (BVH) supporting incremental insert/update/remove alongside raycast,
// range, nearest-neighbor and overlap queries, a batch builder offering
// SAH, spatial-median and object-median partitioning strategies, and a
// static triangle-level mesh BVH for precise ray casting.
//
// Every traversal, build loop, and refit in this package is iterative;
// none recurse, since trees built from real-world data routinely exceed
// the depth a language runtime's call stack tolerates. Insert's descent,
// the batch and mesh builders, the upward refit walk, and Validate are
// additionally bounded by explicit safety caps on their step counts; the
// query, Stats and Refit traversals are not.
//
// The package does not perform any I/O, spawn goroutines, or retain
// ownership of caller payloads beyond an opaque handle — see the package
// README-equivalent sections in SPEC_FULL.md for the full contract.
package bvh
