package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/go-playground/validator/v10"
)

var deviceToken = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// RequestValidator validates request DTOs and reports failures by JSON field name
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("devicetoken", func(fl validator.FieldLevel) bool {
		return deviceToken.MatchString(fl.Field().String())
	})
	return &RequestValidator{validate: v}
}

// Struct validates s and returns an errs.Validation describing the first failures
func (rv *RequestValidator) Struct(s interface{}) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Validation(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errs.Validation(strings.Join(msgs, "; "))
}

// Var validates a single value against tag
func (rv *RequestValidator) Var(field string, value interface{}, tag string) error {
	if err := rv.validate.Var(value, tag); err != nil {
		return errs.Validation(fmt.Sprintf("%s is invalid", field))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
