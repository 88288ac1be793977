package serrors

import "fmt"

// BaseError is the structured error carried across service boundaries. Code is
// stable and machine-readable; LocaleKey points at the translation catalog of
// the presentation layer.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return e.Message
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// FieldError attaches a field name to a BaseError for form-level reporting.
type FieldError struct {
	BaseError
	Field string
}

func NewFieldRequiredError(field, localeKey string) *FieldError {
	return &FieldError{
		BaseError: BaseError{
			Code:      "FIELD_REQUIRED",
			Message:   fmt.Sprintf("%s is required", field),
			LocaleKey: localeKey,
		},
		Field: field,
	}
}

// ValidationErrors maps field names to their validation failures.
type ValidationErrors map[string]*FieldError

func (v ValidationErrors) Error() string {
	for field, err := range v {
		return fmt.Sprintf("validation failed: %s: %s", field, err.Message)
	}
	return "validation failed"
}
