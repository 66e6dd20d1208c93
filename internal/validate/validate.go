// Package validate holds the shared struct validator used by request
// payloads.
package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// category is the closed set of article categories.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.IsCategory(fl.Field().String())
	})

	return v
}

func Struct(s interface{}) error {
	return v.Struct(s)
}
