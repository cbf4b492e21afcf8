package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/app-strategy/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidRawData = errors.New("invalid snapshot data")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRawTable checks that every row fits under the header row.
func validateRawTable(raw model.RawTable) error {
	if len(raw.Headers) == 0 {
		return fmt.Errorf("%w: headers", ErrEmptySlice)
	}
	if len(raw.Rows) == 0 {
		return fmt.Errorf("%w: rows", ErrEmptySlice)
	}
	for i, row := range raw.Rows {
		if len(row) > len(raw.Headers) {
			return fmt.Errorf("%w: row %d has %d cells for %d headers",
				ErrInvalidRawData, i+1, len(row), len(raw.Headers))
		}
	}
	return nil
}
