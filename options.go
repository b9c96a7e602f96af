package vptree

import "runtime"

// Options represents the options for configuring a Tree.
type Options struct {
	// RandomSeed seeds the vantage point selection. If nil, the tree is
	// seeded from the wall clock. A fixed seed yields a reproducible tree
	// shape for identical input.
	RandomSeed *int64

	// Logger receives structured logs for build and search operations.
	// If nil, logging is disabled.
	Logger *Logger

	// Metrics receives operational metrics. If nil, metrics collection
	// is disabled.
	Metrics MetricsCollector

	// MaxConcurrency bounds the fan-out of batch operations such as
	// BatchKNNSearch and NeighborGraph. Values < 1 mean GOMAXPROCS.
	MaxConcurrency int
}

// DefaultOptions contains the default configuration options for a Tree.
var DefaultOptions = Options{
	RandomSeed:     nil,
	MaxConcurrency: 0,
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = runtime.GOMAXPROCS(0)
	}

	return opts
}
