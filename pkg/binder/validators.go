package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var langRE = regexp.MustCompile(`^[a-zA-Z]{2}(-[a-zA-Z]{2})?$`)

// langValidator ensures the value looks like a two-letter language tag with an
// optional region subtag (e.g. "en", "ar", "en-US"), or the empty string. The
// empty string is allowed so the validator can be used on optional fields; add
// `required` to the validate tag if the field must be present.
func langValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return langRE.MatchString(value)
}
