package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsSuccess uint64
	RegistrationsFailed  uint64
	LoginsSuccess        uint64
	LoginsRejected       uint64
	UserCacheHits        uint64
	UserCacheMisses      uint64
	PagesServed          uint64
	PageDurationCount    uint64
	PageDurationTotalNs  int64
	PageItemsTotal       uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	registrationsSuccess uint64
	registrationsFailed  uint64
	loginsSuccess        uint64
	loginsRejected       uint64
	userCacheHits        uint64
	userCacheMisses      uint64
	pagesServed          uint64
	pageDurationCount    uint64
	pageDurationTotalNs  int64
	pageItemsTotal       uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsSuccess: atomic.LoadUint64(&m.registrationsSuccess),
		RegistrationsFailed:  atomic.LoadUint64(&m.registrationsFailed),
		LoginsSuccess:        atomic.LoadUint64(&m.loginsSuccess),
		LoginsRejected:       atomic.LoadUint64(&m.loginsRejected),
		UserCacheHits:        atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:      atomic.LoadUint64(&m.userCacheMisses),
		PagesServed:          atomic.LoadUint64(&m.pagesServed),
		PageDurationCount:    atomic.LoadUint64(&m.pageDurationCount),
		PageDurationTotalNs:  atomic.LoadInt64(&m.pageDurationTotalNs),
		PageItemsTotal:       atomic.LoadUint64(&m.pageItemsTotal),
	}
}

// IncRegistration increments the registration counter for the given status.
func (m *InMemoryRecorder) IncRegistration(status string) {
	if status == "success" {
		atomic.AddUint64(&m.registrationsSuccess, 1)
		return
	}
	atomic.AddUint64(&m.registrationsFailed, 1)
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginsSuccess, 1)
		return
	}
	atomic.AddUint64(&m.loginsRejected, 1)
}

// IncUserCacheHit increments the user cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments the user cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}

// IncPageServed increments the served pages counter.
func (m *InMemoryRecorder) IncPageServed() {
	atomic.AddUint64(&m.pagesServed, 1)
}

// ObservePageDuration records page query duration.
func (m *InMemoryRecorder) ObservePageDuration(duration time.Duration) {
	atomic.AddUint64(&m.pageDurationCount, 1)
	atomic.AddInt64(&m.pageDurationTotalNs, duration.Nanoseconds())
}

// ObservePageSize records the number of items returned in a page.
func (m *InMemoryRecorder) ObservePageSize(size int) {
	atomic.AddUint64(&m.pageItemsTotal, uint64(size))
}
