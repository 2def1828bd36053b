package validator

import (
	"github.com/go-playground/validator/v10"
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
}

func NewXValidator(validator *validator.Validate) IXValidator {
	return &XValidator{validator: validator}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, Error{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}
	return validationErrors
}
