package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct fields against their validate tags and returns a
// field → failed-tag map, or nil when everything passes.
func Validate(v any) map[string]string {
	return Fields(validate.Struct(v))
}

// Fields extracts the per-field failure map from a validation error, such as
// the one gin's binding layer returns. Nil for non-validation errors.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
