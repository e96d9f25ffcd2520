// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

const contactValueTag = "contactvalue"

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the shared custom rules registered.
// It panics if a rule cannot be registered, since every tag using it would
// fail at validation time.
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation(contactValueTag, contactValue); err != nil {
		panic("validator: register " + contactValueTag + ": " + err.Error())
	}
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// contactValue rejects control characters in free-text contact fields.
func contactValue(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsControl(r) && r != '\t' {
			return false
		}
	}
	return true
}
