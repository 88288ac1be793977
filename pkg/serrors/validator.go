package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProcessValidatorErrors converts go-playground validator errors into
// field-keyed structured errors. getFieldLocaleKey maps a struct field name to
// its locale catalog key.
func ProcessValidatorErrors(errs validator.ValidationErrors, getFieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		field := err.Field()
		localeKey := getFieldLocaleKey(field)
		switch err.Tag() {
		case "required":
			out[field] = NewFieldRequiredError(field, localeKey)
		default:
			out[field] = &FieldError{
				BaseError: BaseError{
					Code:      "FIELD_INVALID",
					Message:   fmt.Sprintf("%s failed on the %q rule", field, err.Tag()),
					LocaleKey: localeKey,
				},
				Field: field,
			}
		}
	}
	return out
}
