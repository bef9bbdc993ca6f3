// Package i18n holds the static user-facing strings for the supported
// languages. Provider-returned condition text is already localized and
// passes through the app untouched; only the app's own messages live
// here.
package i18n

import "sweather/internal/models"

// Message keys.
const (
	KeyLocationDenied   = "locationDenied"
	KeyLocationNotFound = "locationNotFound"
	KeyWeatherError     = "weatherError"
	KeyFetchingLocation = "fetchingLocation"
	KeyLoading          = "loading"
)

var translations = map[models.Language]map[string]string{
	models.LangEnglish: {
		KeyLocationDenied:   "Location access denied. Please enable it in your browser settings or search for a city manually.",
		KeyLocationNotFound: "Location not found. Please try a different search.",
		KeyWeatherError:     "Failed to fetch weather data. Please try again.",
		KeyFetchingLocation: "Fetching your location...",
		KeyLoading:          "Loading weather data...",
	},
	models.LangArabic: {
		KeyLocationDenied:   "تم رفض الوصول إلى الموقع. يرجى تمكينه في إعدادات متصفحك أو البحث عن مدينة يدويًا.",
		KeyLocationNotFound: "الموقع غير موجود. يرجى المحاولة بموقع آخر.",
		KeyWeatherError:     "فشل في جلب بيانات الطقس. يرجى المحاولة مرة أخرى.",
		KeyFetchingLocation: "جاري تحديد موقعك...",
		KeyLoading:          "جاري تحميل بيانات الطقس...",
	},
	models.LangFrench: {
		KeyLocationDenied:   "Accès à la position refusé. Veuillez l'activer dans les paramètres de votre navigateur ou rechercher une ville manuellement.",
		KeyLocationNotFound: "Lieu non trouvé. Veuillez essayer une autre recherche.",
		KeyWeatherError:     "Échec de récupération des données météo. Veuillez réessayer.",
		KeyFetchingLocation: "Recherche de votre position...",
		KeyLoading:          "Chargement des données météo...",
	},
}

// T returns the message for key in lang, falling back to English and
// finally to the key itself so a missing entry stays visible.
func T(lang models.Language, key string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := translations[models.LangEnglish][key]; ok {
		return s
	}
	return key
}
