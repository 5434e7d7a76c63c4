package models

type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
)

type MacroLabels struct {
	Protein string
	Fat     string
	Carbs   string
}

type localeTexts struct {
	labels           MacroLabels
	extractionFailed string
	relayFailed      string
}

var texts = map[Locale]localeTexts{
	LocaleDE: {
		labels:           MacroLabels{Protein: "Eiweiß", Fat: "Fett", Carbs: "Kohlenhydrate"},
		extractionFailed: "Die Mahlzeit konnte nicht analysiert werden. Bitte versuchen Sie es erneut.",
		relayFailed:      "Fehler bei der Analyse der Mahlzeit",
	},
	LocaleEN: {
		labels:           MacroLabels{Protein: "Protein", Fat: "Fat", Carbs: "Carbs"},
		extractionFailed: "The meal could not be analyzed. Please try again.",
		relayFailed:      "Error while analyzing the meal",
	},
}

// ParseLocale falls back to German, the default language of the journal.
func ParseLocale(s string) Locale {
	if _, ok := texts[Locale(s)]; ok {
		return Locale(s)
	}
	return LocaleDE
}

func (l Locale) texts() localeTexts {
	if t, ok := texts[l]; ok {
		return t
	}
	return texts[LocaleDE]
}

func (l Locale) MacroLabels() MacroLabels {
	return l.texts().labels
}

// ExtractionFailedMessage is the user-facing text shown after a failed submission.
func (l Locale) ExtractionFailedMessage() string {
	return l.texts().extractionFailed
}

func (l Locale) RelayFailedMessage() string {
	return l.texts().relayFailed
}
