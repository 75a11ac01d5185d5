// Package validate wires go-playground/validator into echo so request DTOs
// can declare constraints with struct tags.
package validate

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator adapts validator.Validate to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", isHHMM)
	return &Validator{validate: v}
}

// Validate implements echo.Validator. Violations surface as 400 responses.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// isHHMM accepts 24-hour wall clock times like "08:30".
func isHHMM(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}
