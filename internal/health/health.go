package health

import (
	"sync"
	"time"

	"github.com/breeze-rmm/screencap/internal/logging"
)

var log = logging.L("health")

// Status represents the health status of a capture capability.
type Status string

const (
	Healthy   Status = "healthy"
	Degraded  Status = "degraded"
	Unhealthy Status = "unhealthy"
	Unknown   Status = "unknown"
)

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case Healthy, Degraded, Unhealthy, Unknown:
		return true
	}
	return false
}

// Check stores the latest result for a named capability.
type Check struct {
	Name       string    `json:"name" yaml:"name"`
	Status     Status    `json:"status" yaml:"status"`
	Message    string    `json:"message,omitempty" yaml:"message,omitempty"`
	DurationMs int64     `json:"durationMs" yaml:"durationMs"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Monitor tracks checks for multiple capabilities. All lists them in the
// order they were first recorded.
type Monitor struct {
	mu     sync.RWMutex
	checks map[string]Check
	order  []string
}

// NewMonitor creates a new health monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		checks: make(map[string]Check),
	}
}

// record stores c. An invalid status is recorded as Unhealthy.
func (m *Monitor) record(c Check) {
	if !c.Status.IsValid() {
		c.Status = Unhealthy
	}
	c.UpdatedAt = time.Now()

	m.mu.Lock()
	if _, ok := m.checks[c.Name]; !ok {
		m.order = append(m.order, c.Name)
	}
	m.checks[c.Name] = c
	m.mu.Unlock()

	if c.Status != Healthy {
		log.Warn("health check degraded", "check", c.Name, "status", string(c.Status), "message", c.Message)
	}
}

// Overall returns the worst status across all recorded checks, or Unknown
// when nothing has been recorded.
func (m *Monitor) Overall() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.overallLocked()
}

func (m *Monitor) overallLocked() Status {
	if len(m.checks) == 0 {
		return Unknown
	}
	worst := Healthy
	for _, c := range m.checks {
		if worse(c.Status, worst) {
			worst = c.Status
		}
	}
	return worst
}

// All returns a snapshot of all current checks.
func (m *Monitor) All() []Check {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Check, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, m.checks[name])
	}
	return result
}

// worse returns true if a is worse than b.
func worse(a, b Status) bool {
	return statusRank(a) > statusRank(b)
}

func statusRank(s Status) int {
	switch s {
	case Healthy:
		return 0
	case Degraded:
		return 1
	case Unhealthy:
		return 2
	case Unknown:
		return 3
	default:
		return 0
	}
}
