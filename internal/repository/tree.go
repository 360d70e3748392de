package repository

import (
	"errors"

	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// storeError maps tree store failures onto the API taxonomy.
func storeError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, treestore.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, message+" not found")
	case errors.Is(err, treestore.ErrInvalidPath):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+message+" key")
	default:
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
}
