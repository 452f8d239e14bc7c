package facade

import "github.com/mirstar13/spatialbvh/bvh"

// Option configures a Facade at construction (SPEC_FULL.md §4.6).
type Option func(*config)

type config struct {
	maxLeafSize       uint32
	maxDepth          uint32
	buildStrategy     bvh.BuildStrategy
	autoUpdate        bool
	updateInterval    uint32
	dirtyRebuildRatio float64
}

func defaultConfig() config {
	return config{
		maxLeafSize:       bvh.DefaultMaxLeafSize,
		maxDepth:          bvh.DefaultMaxDepth,
		buildStrategy:     bvh.BuildSAH,
		autoUpdate:        true,
		updateInterval:    1,
		dirtyRebuildRatio: 0.3,
	}
}

// WithMaxLeafSize forwards to the underlying tree's bvh.WithMaxLeafSize.
func WithMaxLeafSize(n uint32) Option {
	return func(c *config) { c.maxLeafSize = n }
}

// WithMaxDepth forwards to the underlying tree's bvh.WithMaxDepth.
func WithMaxDepth(n uint32) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithBuildStrategy sets the strategy Tick uses when it decides to
// rebuild rather than refit.
func WithBuildStrategy(strategy bvh.BuildStrategy) Option {
	return func(c *config) { c.buildStrategy = strategy }
}

// WithAutoUpdate enables or disables Tick's scheduled maintenance
// entirely; callers that want to drive Update/Refit/Rebuild by hand can
// disable it and call Maintain directly.
func WithAutoUpdate(enabled bool) Option {
	return func(c *config) { c.autoUpdate = enabled }
}

// WithUpdateInterval sets how many Tick calls elapse between maintenance
// passes. A value of 1 (the default) runs maintenance on every tick.
func WithUpdateInterval(n uint32) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.updateInterval = n
	}
}

// WithDirtyRebuildRatio sets the fraction of registered colliders that
// must be dirty in a maintenance pass before Tick rebuilds the whole tree
// instead of refitting it in place.
func WithDirtyRebuildRatio(ratio float64) Option {
	return func(c *config) {
		if ratio < 0 {
			ratio = 0
		}
		c.dirtyRebuildRatio = ratio
	}
}
