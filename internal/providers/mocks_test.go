package providers

import (
	"sync"
	"time"
)

// local mocks to avoid the import cycle with testutil

type testLogger struct {
	mu     sync.Mutex
	levels []string
}

func (m *testLogger) record(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = append(m.levels, level)
}

func (m *testLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) { m.record("error") }
func (m *testLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  { m.record("warn") }
func (m *testLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) { m.record("debug") }
func (m *testLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  { m.record("info") }
func (m *testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) { m.record("fatal") }
func (m *testLogger) Close()                                        {}

type testMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *testMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *testMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *testMetrics) IncCacheHits()                                    { m.hits++ }
func (m *testMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *testMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *testMetrics) IncPersistenceErrors()                            {}
func (m *testMetrics) IncExtractions(_ string)                          {}
func (m *testMetrics) ObserveExtractionDuration(_ time.Duration)        {}
func (m *testMetrics) IncInFlight()                                     {}
func (m *testMetrics) DecInFlight()                                     {}
