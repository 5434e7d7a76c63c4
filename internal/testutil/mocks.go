package testutil

import (
	"context"
	"sync"
	"time"

	"nutrilog/internal/models"
	"nutrilog/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were logged at level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockSlot implements interfaces.SlotInterface in memory.
type MockSlot struct {
	mu     sync.Mutex
	Data   map[string]string
	GetErr error
	SetErr error
	Sets   int
}

func NewMockSlot() *MockSlot {
	return &MockSlot{Data: make(map[string]string)}
}

func (m *MockSlot) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MockSlot) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}

func (m *MockSlot) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetErr = err
}

func (m *MockSlot) Close() error { return nil }

// MockExtractor implements services.ExtractorInterface with injectable behavior.
type MockExtractor struct {
	mu        sync.Mutex
	Calls     []string
	Records   []models.NutritionData
	Err       error
	ExtractFn func(ctx context.Context, description string) ([]models.NutritionData, error)
}

func (m *MockExtractor) Extract(ctx context.Context, description string) ([]models.NutritionData, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, description)
	fn, records, err := m.ExtractFn, m.Records, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, description)
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and counts the
// journal related calls.
type MockMetrics struct {
	mu                sync.Mutex
	Extractions       map[string]int
	PersistenceErrors int
	InFlight          int
	CacheHits         int
	CacheMisses       int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *MockMetrics) IncPersistenceErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceErrors++
}
func (m *MockMetrics) IncExtractions(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Extractions == nil {
		m.Extractions = make(map[string]int)
	}
	m.Extractions[outcome]++
}
func (m *MockMetrics) ObserveExtractionDuration(_ time.Duration) {}
func (m *MockMetrics) IncInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InFlight++
}
func (m *MockMetrics) DecInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InFlight--
}
