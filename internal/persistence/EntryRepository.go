package persistence

import (
	json "github.com/goccy/go-json"
	"nutrilog/internal/models"
	"nutrilog/internal/persistence/interfaces"
	"nutrilog/internal/providers"
)

const (
	EntriesKey = "entries"
	ThemeKey   = "theme"
)

// EntryRepository maps the journal onto slot keys. Entries are stored as a
// JSON array of FoodEntry without a version field.
type EntryRepository struct {
	slot   interfaces.SlotInterface
	logger providers.Logger
}

func NewEntryRepository(slot interfaces.SlotInterface, logger providers.Logger) interfaces.EntryRepositoryInterface {
	return &EntryRepository{
		slot:   slot,
		logger: logger,
	}
}

// Load never fails: an unreadable or malformed slot yields an empty collection.
func (r *EntryRepository) Load() []models.FoodEntry {
	raw, ok, err := r.slot.Get(EntriesKey)
	if err != nil {
		r.logger.Errorf(providers.TypeApp, "Unable to read %s slot, starting empty: %s", EntriesKey, err)
		return []models.FoodEntry{}
	}
	if !ok || raw == "" {
		return []models.FoodEntry{}
	}

	var entries []models.FoodEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warnf(providers.TypeApp, "Malformed %s slot, starting empty: %s", EntriesKey, err)
		return []models.FoodEntry{}
	}
	if entries == nil {
		return []models.FoodEntry{}
	}
	return entries
}

func (r *EntryRepository) Save(entries []models.FoodEntry) error {
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.slot.Set(EntriesKey, string(data))
}

func (r *EntryRepository) LoadTheme() models.Theme {
	raw, ok, err := r.slot.Get(ThemeKey)
	if err != nil {
		r.logger.Errorf(providers.TypeApp, "Unable to read %s slot: %s", ThemeKey, err)
		return models.ThemeLight
	}
	if !ok {
		return models.ThemeLight
	}
	theme, valid := models.ParseTheme(raw)
	if !valid {
		r.logger.Warnf(providers.TypeApp, "Unknown theme %q in slot, using %s", raw, models.ThemeLight)
		return models.ThemeLight
	}
	return theme
}

func (r *EntryRepository) SaveTheme(theme models.Theme) error {
	return r.slot.Set(ThemeKey, string(theme))
}
