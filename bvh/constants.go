package bvh

// Defaults for object BVH construction (SPEC_FULL.md §3).
const (
	DefaultMaxLeafSize = 8
	DefaultMaxDepth    = 32
	DefaultEnableSAH   = true
)

// Defaults for the static mesh BVH.
const (
	DefaultMeshMaxLeafTriangles = 10
	DefaultMeshMaxDepth         = 40
)

// Numeric tolerances (SPEC_FULL.md §6).
const (
	rayEpsilon      = 1e-10
	triangleEpsilon = 1e-8
)

// SAH cost-model constants. These are compiled policy, not configuration:
// the build strategy is selectable, the cost model underneath SAH is not.
const (
	sahBinCount          = 32
	sahTraversalCost     = 1.0
	sahIntersectionCost  = 1.25
	sahLeafFallbackRatio = 2 // object-median split replaces SAH when n <= sahLeafFallbackRatio*maxLeafSize
)

// refitSafetyCap bounds the iterative walk-upwards-refit loop, independent
// of a tree's own max depth, per SPEC_FULL.md §4.2.
const refitSafetyCap = 64

// buildExtraIterations pads the per-build iteration cap so that
// `len(objects)*2 + buildExtraIterations` gives builder loops generous
// headroom before the anti-runaway fallback engages.
const buildExtraIterations = 1000
