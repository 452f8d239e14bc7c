package bvh

// Option configures a Tree at construction (SPEC_FULL.md §3.2).
type Option func(*treeConfig)

type treeConfig struct {
	maxLeafSize uint32
	maxDepth    uint32
	enableSAH   bool
}

func defaultTreeConfig() treeConfig {
	return treeConfig{
		maxLeafSize: DefaultMaxLeafSize,
		maxDepth:    DefaultMaxDepth,
		enableSAH:   DefaultEnableSAH,
	}
}

// WithMaxLeafSize sets the subset size used by the BuildSAH batch build:
// subsets of at most sahLeafFallbackRatio*n objects are split by object
// median instead of SAH binning. Every leaf holds exactly one object
// whatever this value is. Values below 1 are clamped to 1.
func WithMaxLeafSize(n uint32) Option {
	return func(c *treeConfig) {
		if n < 1 {
			n = 1
		}
		c.maxLeafSize = n
	}
}

// WithMaxDepth sets the depth at which Insert stops descending and force
// splits (see Insert). The batch builder does not read it. Values below 1
// are clamped to 1.
func WithMaxDepth(n uint32) Option {
	return func(c *treeConfig) {
		if n < 1 {
			n = 1
		}
		c.maxDepth = n
	}
}

// WithSAH sets the tree's enable_sah flag, read by DefaultBuildStrategy
// and RebuildDefault. Insert and an explicit Rebuild(strategy) call
// ignore it entirely — it only matters to callers that ask the tree for
// its own default strategy instead of naming one.
func WithSAH(enabled bool) Option {
	return func(c *treeConfig) { c.enableSAH = enabled }
}
