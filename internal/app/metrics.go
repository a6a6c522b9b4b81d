package app

import (
	"sync"
	"time"
)

// Error kinds tracked by the recorder.
const (
	ErrorKindSTT        = "stt_errors"
	ErrorKindDispatch   = "dispatch_errors"
	ErrorKindValidation = "validation_errors"
	ErrorKindStorage    = "storage_errors"
)

// MetricsRecorder keeps in-memory usage counters for the analytics agent.
// Counters reset with the process.
type MetricsRecorder struct {
	mu         sync.Mutex
	startedAt  time.Time
	encounters map[string]int
	errors     map[string]int
}

// NewMetricsRecorder creates an empty recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{
		startedAt:  time.Now().UTC(),
		encounters: map[string]int{},
		errors:     map[string]int{},
	}
}

// RecordEncounter counts one dispatched encounter for the named agent.
func (m *MetricsRecorder) RecordEncounter(agentName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encounters[agentName]++
}

// RecordError counts one error of the given kind.
func (m *MetricsRecorder) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

// TotalEncounters returns the number of encounters recorded so far.
func (m *MetricsRecorder) TotalEncounters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, count := range m.encounters {
		total += count
	}
	return total
}

// Snapshot returns the current counters in envelope-ready form.
func (m *MetricsRecorder) Snapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	byAgent := map[string]interface{}{}
	total := 0
	for agentName, count := range m.encounters {
		byAgent[agentName] = count
		total += count
	}

	errorCounts := map[string]interface{}{}
	totalErrors := 0
	for kind, count := range m.errors {
		errorCounts[kind] = count
		totalErrors += count
	}

	errorRate := 0.0
	if total > 0 {
		errorRate = float64(totalErrors) / float64(total)
	}

	return map[string]interface{}{
		"total_encounters": total,
		"by_agent":         byAgent,
		"errors":           errorCounts,
		"error_rate":       errorRate,
		"since":            m.startedAt.Format(time.RFC3339),
	}
}
