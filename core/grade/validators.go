package grade

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
)

var (
	subjectCodeTag   = "subjectcode"
	subjectCodeText  = "subject codes are 1 to 8 letters or digits, starting with a letter"
	subjectCodeRegex = regexp.MustCompile("^[A-Z][A-Z0-9]{0,7}$")
)

// InitValidators registers the grade validators on top of the core ones.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(subjectCodeTag, subjectCodeValidation)
	core.RegisterCustomTranslation(validate, translator, subjectCodeTag, subjectCodeText)
}

// Custom Validators

// subjectCodeValidation checks that a subject code is well formed once normalized
func subjectCodeValidation(fl validator.FieldLevel) bool {
	if code, ok := fl.Field().Interface().(string); ok {
		return subjectCodeRegex.MatchString(string(curriculum.NormalizeSubject(code)))
	}
	return false
}
