package interfaces

import "nutrilog/internal/models"

type EntryRepositoryInterface interface {
	Load() []models.FoodEntry
	Save(entries []models.FoodEntry) error
	LoadTheme() models.Theme
	SaveTheme(theme models.Theme) error
}
