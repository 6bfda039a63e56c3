package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	timerActions    map[string]int
	substitutions   int
	saves           int
	loads           int
	reportDurations []float64
	startupTime     float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		timerActions:    make(map[string]int),
		reportDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTimerAction(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timerActions[action]++
}

func (m *Mock) IncSubstitutions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substitutions++
}

func (m *Mock) IncSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
}

func (m *Mock) IncLoads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
}

func (m *Mock) ObserveReportDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportDurations = append(m.reportDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TimerActions returns the count recorded for the given action.
func (m *Mock) TimerActions(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timerActions[action]
}

// Substitutions returns the number of times IncSubstitutions was called.
func (m *Mock) Substitutions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.substitutions
}

// Saves returns the number of times IncSaves was called.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Loads returns the number of times IncLoads was called.
func (m *Mock) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}
