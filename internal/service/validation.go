package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// mustRegisterValidation registers a custom tag, panicking if the validator
// refuses it.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}
