package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks the validate tags of s and describes every failure in one error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var details strings.Builder
	for _, fieldErr := range validationErrors {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fieldErr.Tag() {
		case "required", "required_if":
			details.WriteString(fmt.Sprintf("%s is required", fieldErr.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param()))
		case "max":
			details.WriteString(fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must have length %s", fieldErr.Field(), fieldErr.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return errors.New(details.String())
}
