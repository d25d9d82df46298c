package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns field->tag pairs for every failed rule, or nil when the
// struct is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return fields
}
