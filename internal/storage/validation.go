package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flowlytics/basket-sift/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
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

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.Meta.RunID == "" {
		return fmt.Errorf("%w: missing run ID", ErrInvalidRun)
	}
	if run.Meta.GeneratedAt.IsZero() {
		return fmt.Errorf("%w: missing generation time", ErrInvalidRun)
	}
	if run.Report == nil {
		return fmt.Errorf("%w: missing report", ErrInvalidRun)
	}
	return nil
}
