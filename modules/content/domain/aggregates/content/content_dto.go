package content

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/evergreen-centers/evergreen/pkg/serrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CreateDTO struct {
	Facility    string   `validate:"required"`
	Title       string   `validate:"required"`
	Body        string   `validate:"required"`
	Attachments []string
}

func (d *CreateDTO) Normalize() {
	d.Facility = strings.TrimSpace(strings.ToLower(d.Facility))
	d.Title = strings.TrimSpace(d.Title)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := validate.Struct(d)
	if errs == nil {
		return nil, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), fieldLocaleKey)
	return validationErrors, false
}

type UpdateDTO struct {
	Title       string `validate:"required"`
	Body        string `validate:"required"`
	Attachments []string
	// Facility, when non-empty, requests a scope reassignment. Only
	// corporate actors may do this.
	Facility string
}

func (d *UpdateDTO) Normalize() {
	d.Facility = strings.TrimSpace(strings.ToLower(d.Facility))
	d.Title = strings.TrimSpace(d.Title)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := validate.Struct(d)
	if errs == nil {
		return nil, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), fieldLocaleKey)
	return validationErrors, false
}

func fieldLocaleKey(field string) string {
	return fmt.Sprintf("Content.Fields.%s", field)
}
