package failure

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAsset  = errors.New("invalid asset")
	ErrInvalidRoot   = errors.New("invalid game root")
	ErrUnimplemented = errors.New("unimplemented operation")
	ErrUnsafeTarget  = errors.New("unsafe target")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome is the per-item result category reported by batch operations.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// Classify maps an item error to the outcome a batch report should record.
// Structural mismatches are skipped; cancellation is never a failure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, ErrInvalidAsset):
		return OutcomeSkipped
	default:
		return OutcomeFailed
	}
}

// IsFatal reports whether err indicates a programming-level or root failure
// that must abort the caller instead of being recorded per item.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnimplemented) || errors.Is(err, ErrInvalidRoot)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
