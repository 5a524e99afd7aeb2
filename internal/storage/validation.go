// Package storage provides the data persistence layer for the fintrack ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fintrack/internal/common"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrCategoryNotFound = fmt.Errorf("%w: category does not exist", common.ErrValidation)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// notFound wraps common.ErrNotFound with the entity and id that was missing.
func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, common.ErrNotFound)
}
