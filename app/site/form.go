package site

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// FormErrors maps a form field name to a message.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	var parts []string
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// FormValidator checks structs against their "validate" tags and reports
// failures under the field's "form" tag name.
type FormValidator struct {
	valid *v10.Validate
}

// NewFormValidator constructs a validator.
func NewFormValidator() *FormValidator {
	v := v10.New(v10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &FormValidator{valid: v}
}

// Validate returns nil or FormErrors.
func (f *FormValidator) Validate(form any) error {
	err := f.valid.Struct(form)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(FormErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe v10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "hexcolor":
		return "must be a hex color such as #663399"
	default:
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return "fails " + rule
	}
}
