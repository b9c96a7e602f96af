package vptree

import (
	"sync/atomic"
	"time"
)

// Compile-time checks to ensure both collectors satisfy MetricsCollector.
var _ MetricsCollector = NoopMetricsCollector{}
var _ MetricsCollector = (*BasicMetricsCollector)(nil)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called once after tree construction.
	// count is the number of input points, duration is the total time taken,
	// err is nil if successful.
	RecordBuild(count int, duration time.Duration, err error)

	// RecordSearch is called after each search operation.
	// k is the number of neighbors requested, duration is the time taken,
	// distanceCalls is the number of distance computations performed and
	// err is nil if successful.
	RecordSearch(k int, duration time.Duration, distanceCalls int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, int, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
//
// The distance call counter makes pruning effectiveness observable: for a
// balanced tree it should stay well below count per search.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildPoints      atomic.Int64
	BuildTotalNanos  atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	DistanceCalls    atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(count int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildPoints.Add(int64(count))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, distanceCalls int, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.DistanceCalls.Add(int64(distanceCalls))
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		BuildPoints:      b.BuildPoints.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchErrors:     b.SearchErrors.Load(),
		SearchAvgNanos:   b.getAvgSearchNanos(),
		DistanceCalls:    b.DistanceCalls.Load(),
		AvgDistanceCalls: b.getAvgDistanceCalls(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgDistanceCalls() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.DistanceCalls.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	BuildPoints      int64
	SearchCount      int64
	SearchErrors     int64
	SearchAvgNanos   int64
	DistanceCalls    int64
	AvgDistanceCalls int64
}
