// Package validator binds go-playground/validator as the echo request
// validator and shapes failures into the application error taxonomy.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "ratehub/internal/domain/errors"

	validate "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type requestValidator struct {
	validator *validate.Validate
}

// New creates the echo.Validator for the HTTP server. It registers the custom
// password strength rule on top of the standard tag set.
func New() echo.Validator {
	v := validate.New()
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic(errors.Wrap(err, "failed to register password validation"))
	}

	return &requestValidator{validator: v}
}

// Validate implements echo.Validator. Tag failures are converted to a
// ValidationError carrying one FieldError per offending field.
func (rv *requestValidator) Validate(i any) error {
	err := rv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var invalid *validate.InvalidValidationError
	if errors.As(err, &invalid) {
		return errors.WithStack(err)
	}

	var tagErrs validate.ValidationErrors
	if !errors.As(err, &tagErrs) {
		return errors.WithStack(err)
	}

	fields := make([]domainerrors.FieldError, 0, len(tagErrs))
	for _, fe := range tagErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
			Value:   fieldValue(fe),
		})
	}

	return domainerrors.NewValidationError(fields)
}

// validatePassword enforces 8-16 characters with at least one uppercase
// letter and one special character.
func validatePassword(fl validate.FieldLevel) bool {
	password := fl.Field().String()
	if length := utf8.RuneCountInString(password); length < 8 || length > 16 {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasSpecial
}

// fieldName reports the JSON-ish name of the failed field, lowercasing the
// leading rune so Go field names line up with request body keys.
func fieldName(fe validate.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validate.FieldError) string {
	name := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		if isNumericKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", name, fe.Param())
		}

		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		if isNumericKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", name, fe.Param())
		}

		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "password":
		return fmt.Sprintf("%s must be 8-16 characters with at least one uppercase letter and one special character", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// fieldValue echoes the offending value back to the client, except for
// password-bearing fields which must never round-trip.
func fieldValue(fe validate.FieldError) any {
	if fe.Tag() == "password" || strings.Contains(strings.ToLower(fe.Field()), "password") {
		return nil
	}

	return fe.Value()
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
