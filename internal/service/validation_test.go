package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

func TestMustRegisterValidationPanicsOnRejectedTag(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() {
		mustRegisterValidation(v, "", func(validator.FieldLevel) bool { return true })
	})
	assert.NotPanics(t, func() {
		mustRegisterValidation(v, "always", func(validator.FieldLevel) bool { return true })
	})
}

func TestServicesShareOneValidator(t *testing.T) {
	store := treestore.NewMemory()
	shared := validator.New()
	assert.NotPanics(t, func() {
		NewSEOService(repository.NewSEORepository(store), nil, SEOConfig{}, shared, nil)
		NewPageBuilderService(repository.NewPageRepository(store), repository.NewSEORepository(store), "", shared, nil)
		NewEventService(repository.NewEventRepository(store), shared, nil)
	})
}
