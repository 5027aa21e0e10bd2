package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration(status string) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncUserCacheHit is a no-op.
func (n *NoopRecorder) IncUserCacheHit() {}

// IncUserCacheMiss is a no-op.
func (n *NoopRecorder) IncUserCacheMiss() {}

// IncPageServed is a no-op.
func (n *NoopRecorder) IncPageServed() {}

// ObservePageDuration is a no-op.
func (n *NoopRecorder) ObservePageDuration(duration time.Duration) {}

// ObservePageSize is a no-op.
func (n *NoopRecorder) ObservePageSize(size int) {}
