package budget

import (
	"fmt"

	"github.com/mholmer/giftlog/date"
)

// ValidationError reports a budget operation rejected before any state was
// written. The message is meant for direct display to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// OverlapError is a validation failure caused by a period colliding with an
// existing budget. Touching boundaries count as collision.
type OverlapError struct {
	Period   date.Range
	Existing *Budget
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("period %s overlaps budget #%d %q (%s)",
		e.Period, e.Existing.ID, e.Existing.Description, e.Existing.Period())
}

// NotFoundError reports an edit against an unknown budget id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no budget with id %d", e.ID)
}
