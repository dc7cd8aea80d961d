package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports field paths by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// structErrors runs tag validation and converts failures into field errors.
func structErrors(v *validator.Validate, s any) ValidationErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "(root)", Code: CodeInvalidValue, Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Code:    codeForTag(fe.Tag()),
			Message: messageFor(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func codeForTag(tag string) ErrorCode {
	switch tag {
	case "required":
		return CodeRequiredFieldMissing
	case "email":
		return CodeInvalidEmail
	default:
		return CodeInvalidValue
	}
}

func messageFor(fe validator.FieldError) string {
	name := fe.Field()
	isString := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "min", "gte":
		switch {
		case isString:
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		case isList:
			return fmt.Sprintf("%s must have at least %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		switch {
		case isString:
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		case isList:
			return fmt.Sprintf("%s must have at most %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
