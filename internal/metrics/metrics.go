// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncRegistration(status string) // status: "success", "conflict", "invalid"
	IncLogin(status string)        // status: "success", "rejected"
	IncUserCacheHit()
	IncUserCacheMiss()

	// Image listing metrics
	IncPageServed()
	ObservePageDuration(duration time.Duration)
	ObservePageSize(size int)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
