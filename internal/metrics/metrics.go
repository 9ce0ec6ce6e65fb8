package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metric names used across the services.
const (
	RegistrationsCompleted   = "registrations_completed"
	RegistrationsCompensated = "registrations_compensated"
	RegistrationConflicts    = "registration_conflicts"
	NotificationFailures     = "notification_failures"
	EventsCreated            = "events_created"
	ProximityQueries         = "proximity_queries"
	ReconciledUserEventLinks = "reconciled_user_event_links"
)

// ErrorRateMetric captures error rates for an operation.
type ErrorRateMetric struct {
	Total     int64   `json:"total"`
	Errors    int64   `json:"errors"`
	ErrorRate float64 `json:"error_rate"`
}

// TimerMetric captures timing information for an operation.
type TimerMetric struct {
	Count         int64   `json:"count"`
	TotalTimeMs   int64   `json:"total_time_ms"`
	AverageTimeMs float64 `json:"average_time_ms"`
}

// Metrics is an in-process metrics collector: counters, timers, and error
// rates, exposed as JSON by the metrics handler.
type Metrics struct {
	mu       sync.RWMutex
	counters map[string]*int64
	timers   map[string]*timer
	rates    map[string]*rate

	startTime time.Time
}

type timer struct {
	count       int64
	totalTimeMs int64
}

type rate struct {
	total  int64
	errors int64
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		counters:  make(map[string]*int64),
		timers:    make(map[string]*timer),
		rates:     make(map[string]*rate),
		startTime: time.Now(),
	}
}

// IncrementCounter increments a counter by 1.
func (m *Metrics) IncrementCounter(name string) {
	atomic.AddInt64(m.counter(name), 1)
}

// RecordTimer records one timed operation.
func (m *Metrics) RecordTimer(name string, duration time.Duration) {
	t := m.timer(name)
	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTimeMs, duration.Milliseconds())
}

// RecordSuccess records a successful operation for error rate tracking.
func (m *Metrics) RecordSuccess(name string) {
	r := m.rate(name)
	atomic.AddInt64(&r.total, 1)
}

// RecordError records a failed operation for error rate tracking.
func (m *Metrics) RecordError(name string) {
	r := m.rate(name)
	atomic.AddInt64(&r.total, 1)
	atomic.AddInt64(&r.errors, 1)
}

// GetCounters returns a snapshot of all counters.
func (m *Metrics) GetCounters() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(m.counters))
	for name, c := range m.counters {
		out[name] = atomic.LoadInt64(c)
	}
	return out
}

// GetTimers returns a snapshot of all timers.
func (m *Metrics) GetTimers() map[string]TimerMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]TimerMetric, len(m.timers))
	for name, t := range m.timers {
		count := atomic.LoadInt64(&t.count)
		total := atomic.LoadInt64(&t.totalTimeMs)
		tm := TimerMetric{Count: count, TotalTimeMs: total}
		if count > 0 {
			tm.AverageTimeMs = float64(total) / float64(count)
		}
		out[name] = tm
	}
	return out
}

// GetErrorRates returns a snapshot of all error rates.
func (m *Metrics) GetErrorRates() map[string]ErrorRateMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]ErrorRateMetric, len(m.rates))
	for name, r := range m.rates {
		total := atomic.LoadInt64(&r.total)
		errs := atomic.LoadInt64(&r.errors)
		em := ErrorRateMetric{Total: total, Errors: errs}
		if total > 0 {
			em.ErrorRate = float64(errs) / float64(total)
		}
		out[name] = em
	}
	return out
}

// GetAllMetrics returns everything the /metrics endpoint exposes.
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
		"counters":       m.GetCounters(),
		"timers":         m.GetTimers(),
		"error_rates":    m.GetErrorRates(),
	}
}

func (m *Metrics) counter(name string) *int64 {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.counters[name]; !ok {
		c = new(int64)
		m.counters[name] = c
	}
	return c
}

func (m *Metrics) timer(name string) *timer {
	m.mu.RLock()
	t, ok := m.timers[name]
	m.mu.RUnlock()
	if ok {
		return t
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok = m.timers[name]; !ok {
		t = &timer{}
		m.timers[name] = t
	}
	return t
}

func (m *Metrics) rate(name string) *rate {
	m.mu.RLock()
	r, ok := m.rates[name]
	m.mu.RUnlock()
	if ok {
		return r
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok = m.rates[name]; !ok {
		r = &rate{}
		m.rates[name] = r
	}
	return r
}
