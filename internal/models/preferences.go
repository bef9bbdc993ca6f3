package models

// Theme values persisted under the "theme" preference key.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language codes persisted under the "language" preference key.
// Condition text comes back from the provider already localized for
// these codes, so a language change forces a re-fetch.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangFrench  Language = "fr"
)

// ValidTheme reports whether t is a supported theme.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// ValidLanguage reports whether l is a supported language code.
func ValidLanguage(l Language) bool {
	return l == LangEnglish || l == LangArabic || l == LangFrench
}

// Preferences is the process-wide persisted user configuration.
type Preferences struct {
	Theme    Theme    `json:"theme"`
	Language Language `json:"language"`
}

// DefaultPreferences are used on first start and when the preference
// store is unavailable.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: LangEnglish}
}
