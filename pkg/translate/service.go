package translate

import "strings"

// dictionary holds the built-in translations, keyed by lowercase target
// language, then by the exact source text. This covers the platform's fixed
// interface strings; free text falls through to the tagged passthrough.
var dictionary = map[string]map[string]string{
	"ar": {
		"Welcome":           "أهلاً وسهلاً",
		"Listen":            "استمع",
		"Subscribe":         "اشترك",
		"Surah":             "سورة",
		"Reciter":           "القارئ",
		"Donate":            "تبرع",
		"Prayer Times":      "مواقيت الصلاة",
		"Audio unavailable": "الصوت غير متوفر",
	},
	"fr": {
		"Welcome":   "Bienvenue",
		"Listen":    "Écouter",
		"Subscribe": "S'abonner",
		"Donate":    "Faire un don",
	},
	"tr": {
		"Welcome":   "Hoş geldiniz",
		"Listen":    "Dinle",
		"Subscribe": "Abone ol",
	},
	"id": {
		"Welcome":   "Selamat datang",
		"Listen":    "Dengarkan",
		"Subscribe": "Berlangganan",
	},
}

// Result is a single translation outcome. Fallback is set when the text had
// no dictionary entry and was tagged instead of translated.
type Result struct {
	TranslatedText string
	Fallback       bool
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Translate looks the text up in the dictionary for the target language. On
// a miss it returns the original text prefixed with the uppercased language
// tag, so the frontend still renders something readable.
func (svc *Service) Translate(text, targetLanguage string) Result {
	target := strings.ToLower(targetLanguage)

	if entries, ok := dictionary[target]; ok {
		if translated, ok := entries[text]; ok {
			return Result{TranslatedText: translated}
		}
	}

	return Result{
		TranslatedText: "[" + strings.ToUpper(targetLanguage) + "] " + text,
		Fallback:       true,
	}
}
