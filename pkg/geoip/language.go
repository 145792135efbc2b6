package geoip

// countryLanguages maps ISO 3166-1 alpha-2 country codes to the primary
// interface language offered for that country. Anything missing defaults to
// English.
var countryLanguages = map[string]string{
	"SA": "ar",
	"AE": "ar",
	"KW": "ar",
	"QA": "ar",
	"BH": "ar",
	"OM": "ar",
	"JO": "ar",
	"LB": "ar",
	"SY": "ar",
	"IQ": "ar",
	"EG": "ar",
	"LY": "ar",
	"TN": "ar",
	"DZ": "ar",
	"MA": "ar",
	"SD": "ar",
	"YE": "ar",
	"PS": "ar",
	"TR": "tr",
	"ID": "id",
	"MY": "ms",
	"PK": "ur",
	"IR": "fa",
	"FR": "fr",
	"DE": "de",
	"ES": "es",
	"RU": "ru",
	"BD": "bn",
}

// LanguageFor returns the primary language for a country code.
func LanguageFor(countryCode string) string {
	if lang, ok := countryLanguages[countryCode]; ok {
		return lang
	}
	return "en"
}
