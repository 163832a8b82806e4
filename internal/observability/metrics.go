package observability

import (
	"sync"
	"time"
)

// RouteKey identifies a request counter bucket.
type RouteKey struct {
	Path   string
	Method string
	Status int
}

// ErrorKey identifies an error counter bucket by domain error code.
type ErrorKey struct {
	Path   string
	Method string
	Code   string
}

// Metrics keeps in-memory request and error counters plus accumulated
// latency per route. All methods are safe on a nil receiver so wiring can
// stay optional.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[RouteKey]int64
	totalDuration map[RouteKey]time.Duration
	errorCount    map[ErrorKey]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[RouteKey]int64),
		totalDuration: make(map[RouteKey]time.Duration),
		errorCount:    make(map[ErrorKey]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := RouteKey{Path: path, Method: method, Status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError counts a request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := ErrorKey{Path: path, Method: method, Code: code}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RequestCount returns the number of requests recorded for the bucket.
func (m *Metrics) RequestCount(key RouteKey) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[key]
}

// ErrorCount returns the number of errors recorded for the bucket.
func (m *Metrics) ErrorCount(key ErrorKey) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[key]
}

// AverageDuration returns the mean latency of the bucket, zero when empty.
func (m *Metrics) AverageDuration(key RouteKey) time.Duration {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := m.requestCount[key]
	if count == 0 {
		return 0
	}
	return m.totalDuration[key] / time.Duration(count)
}
