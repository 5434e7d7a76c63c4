package models

// Totals sums every nutrition field over entries. The empty collection
// yields all zeros.
func Totals(entries []FoodEntry) DailyTotals {
	var t DailyTotals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Fat += e.Fat
		t.Carbs += e.Carbs
	}
	return t
}

// MacroBreakdown returns protein, fat and carbs in that order, skipping every
// macro whose total is not strictly positive. Calories are not part of it.
func MacroBreakdown(t DailyTotals, labels MacroLabels) []MacroSlice {
	candidates := [...]MacroSlice{
		{Key: MacroProtein, Label: labels.Protein, Value: t.Protein},
		{Key: MacroFat, Label: labels.Fat, Value: t.Fat},
		{Key: MacroCarbs, Label: labels.Carbs, Value: t.Carbs},
	}

	out := make([]MacroSlice, 0, len(candidates))
	for _, c := range candidates {
		if c.Value > 0 {
			out = append(out, c)
		}
	}
	return out
}
