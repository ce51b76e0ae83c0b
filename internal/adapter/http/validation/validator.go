package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"loginapp/internal/core/domain"
)

// Validator adapts go-playground/validator to the email and struct
// validation ports.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]

		if name == "-" || name == "" {
			return strings.ToLower(field.Name)
		}

		return name
	})

	return &Validator{validate: validate}
}

func (v *Validator) IsValid(email string) bool {
	return v.validate.Var(email, "email") == nil
}

// ValidateStruct reports the first failing field as a missing or invalid
// param error.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)

	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fieldError := validationErrors[0]

	if fieldError.Tag() == "required" {
		return domain.NewMissingParamError(fieldError.Field())
	}

	return domain.NewInvalidParamError(fieldError.Field())
}
