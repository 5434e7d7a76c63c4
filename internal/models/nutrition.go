package models

// NutritionData is one food item as estimated by the extraction service.
type NutritionData struct {
	ItemName string  `json:"itemName"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// FoodEntry is the persisted unit of the journal. ID, Timestamp and RawInput
// never change after the store has created the entry.
type FoodEntry struct {
	NutritionData
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	RawInput  string `json:"rawInput"`
}

type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

type Macro string

const (
	MacroProtein Macro = "protein"
	MacroFat     Macro = "fat"
	MacroCarbs   Macro = "carbs"
)

// MacroSlice is one segment of the macro-nutrient proportion chart.
type MacroSlice struct {
	Key   Macro   `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
