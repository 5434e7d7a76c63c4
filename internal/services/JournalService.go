package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"
	"nutrilog/internal/models"
	"nutrilog/internal/persistence/interfaces"
	"nutrilog/internal/providers"
	"nutrilog/internal/structures"
)

var (
	ErrSuperseded   = errors.New("submission superseded by a later one")
	ErrInvalidTheme = errors.New("invalid theme")
)

// SubmitResult carries the outcome of one submission. Error holds the
// message set by a failed extraction, independent of later submissions.
type SubmitResult struct {
	Sequence uint64             `json:"sequence"`
	Entries  []models.FoodEntry `json:"entries"`
	Error    string             `json:"error,omitempty"`
}

// Dashboard is the read model a view renders in one pass.
type Dashboard struct {
	Entries   []models.FoodEntry  `json:"entries"`
	Totals    models.DailyTotals  `json:"totals"`
	Breakdown []models.MacroSlice `json:"breakdown"`
	Loading   bool                `json:"loading"`
	Error     string              `json:"error"`
	Theme     models.Theme        `json:"theme"`
	Revision  uint64              `json:"revision"`
}

type JournalServiceInterface interface {
	Restore()
	Submit(ctx context.Context, description string) (SubmitResult, error)
	Remove(id string) bool
	Entries() []models.FoodEntry
	View() ([]models.FoodEntry, uint64)
	Totals() models.DailyTotals
	Breakdown() []models.MacroSlice
	BreakdownOf(totals models.DailyTotals) []models.MacroSlice
	Dashboard() Dashboard
	Theme() models.Theme
	SetTheme(theme string) (models.Theme, error)
	Persist() error
	FlushIfDirty() error
	InFlight() int
	Len() int
}

type JournalService struct {
	conf      *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	store     *models.EntryStore
	extractor ExtractorInterface
	repo      interfaces.EntryRepositoryInterface
	locale    models.Locale

	// opsMu serializes mutations with their persist so the slot always
	// ends up holding the latest collection.
	opsMu sync.Mutex

	stateMu   sync.RWMutex
	lastError string
	theme     models.Theme

	sequence atomic.Uint64
	inFlight atomic.Int64
	dirty    atomic.Bool
}

func NewJournalService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store *models.EntryStore, extractor ExtractorInterface, repo interfaces.EntryRepositoryInterface) JournalServiceInterface {
	return &JournalService{
		conf:      conf,
		logger:    logger,
		metrics:   metrics,
		store:     store,
		extractor: extractor,
		repo:      repo,
		locale:    models.ParseLocale(conf.Journal.Locale),
		theme:     models.ThemeLight,
	}
}

func (js *JournalService) Restore() {
	js.opsMu.Lock()
	defer js.opsMu.Unlock()

	if js.store.Replace(js.repo.Load()) {
		// repaired ids must survive the next restart
		_ = js.persistLocked()
	}
	theme := js.repo.LoadTheme()

	js.stateMu.Lock()
	js.theme = theme
	js.stateMu.Unlock()

	js.logger.Infof(providers.TypeApp, "Restored %d entries, theme %s", js.store.Len(), theme)
}

// Submit extracts nutrition records from description and prepends them.
// A blank description changes nothing. A failed extraction leaves the
// collection as it was and sets the error message.
func (js *JournalService) Submit(ctx context.Context, description string) (SubmitResult, error) {
	if isBlank(description) {
		return SubmitResult{}, ErrBlankDescription
	}

	seq := js.sequence.Inc()
	js.setError("")
	js.inFlight.Inc()
	js.metrics.IncInFlight()
	defer func() {
		js.inFlight.Dec()
		js.metrics.DecInFlight()
	}()

	records, err := js.extractor.Extract(ctx, description)
	if err != nil {
		if errors.Is(err, ErrBlankDescription) {
			return SubmitResult{Sequence: seq}, err
		}
		msg := js.locale.ExtractionFailedMessage()
		js.setError(msg)
		return SubmitResult{Sequence: seq, Error: msg}, err
	}

	js.opsMu.Lock()
	defer js.opsMu.Unlock()

	// checked under opsMu so no newer block can be prepended in between
	if js.conf.Journal.DiscardSuperseded && js.sequence.Load() != seq {
		js.logger.Warnf(providers.TypeApp, "Discarding result of submission %d, superseded by %d", seq, js.sequence.Load())
		return SubmitResult{Sequence: seq}, ErrSuperseded
	}

	created := js.store.Append(records, description)
	if len(created) > 0 {
		_ = js.persistLocked()
	}
	js.logger.Infof(providers.TypeApp, "Submission %d added %d entries", seq, len(created))

	return SubmitResult{Sequence: seq, Entries: created}, nil
}

func (js *JournalService) Remove(id string) bool {
	js.opsMu.Lock()
	defer js.opsMu.Unlock()

	if !js.store.Remove(id) {
		return false
	}
	_ = js.persistLocked()
	return true
}

func (js *JournalService) Entries() []models.FoodEntry {
	return js.store.Snapshot()
}

func (js *JournalService) View() ([]models.FoodEntry, uint64) {
	return js.store.View()
}

func (js *JournalService) Totals() models.DailyTotals {
	return models.Totals(js.store.Snapshot())
}

func (js *JournalService) Breakdown() []models.MacroSlice {
	return js.BreakdownOf(js.Totals())
}

func (js *JournalService) BreakdownOf(totals models.DailyTotals) []models.MacroSlice {
	return models.MacroBreakdown(totals, js.locale.MacroLabels())
}

func (js *JournalService) Dashboard() Dashboard {
	entries, revision := js.store.View()
	totals := models.Totals(entries)

	js.stateMu.RLock()
	lastError, theme := js.lastError, js.theme
	js.stateMu.RUnlock()

	return Dashboard{
		Entries:   entries,
		Totals:    totals,
		Breakdown: js.BreakdownOf(totals),
		Loading:   js.inFlight.Load() > 0,
		Error:     lastError,
		Theme:     theme,
		Revision:  revision,
	}
}

func (js *JournalService) Theme() models.Theme {
	js.stateMu.RLock()
	defer js.stateMu.RUnlock()
	return js.theme
}

func (js *JournalService) SetTheme(value string) (models.Theme, error) {
	theme, ok := models.ParseTheme(value)
	if !ok {
		return "", ErrInvalidTheme
	}

	js.opsMu.Lock()
	defer js.opsMu.Unlock()

	js.stateMu.Lock()
	js.theme = theme
	js.stateMu.Unlock()

	if err := js.repo.SaveTheme(theme); err != nil {
		js.logger.Errorf(providers.TypeApp, "Error while persisting theme: %s", err)
		return theme, err
	}
	return theme, nil
}

func (js *JournalService) Persist() error {
	js.opsMu.Lock()
	defer js.opsMu.Unlock()
	return js.persistLocked()
}

// FlushIfDirty retries the last failed write, if any.
func (js *JournalService) FlushIfDirty() error {
	if !js.dirty.Load() {
		return nil
	}
	return js.Persist()
}

func (js *JournalService) InFlight() int {
	return int(js.inFlight.Load())
}

func (js *JournalService) Len() int {
	return js.store.Len()
}

func (js *JournalService) persistLocked() error {
	start := time.Now()
	err := js.repo.Save(js.store.Snapshot())
	js.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		js.dirty.Store(true)
		js.metrics.IncPersistenceErrors()
		js.logger.Errorf(providers.TypeApp, "Error while persisting entries: %s", err)
		return err
	}
	js.dirty.Store(false)
	return nil
}

func (js *JournalService) setError(msg string) {
	js.stateMu.Lock()
	js.lastError = msg
	js.stateMu.Unlock()
}
