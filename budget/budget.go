// Package budget manages date-bounded spending allowances. Budgets live in
// a small JSON store and obey one hard invariant: no two budgets may cover
// overlapping calendar intervals, so at any day at most one budget is
// active. Usage against the active budget is derived from the gift log,
// never stored.
package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/date"
)

// Status classifies a budget against a reference day.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusFuture  Status = "FUTURE"
	StatusExpired Status = "EXPIRED"
)

// Budget is a spending allowance bound to an inclusive date interval.
type Budget struct {
	ID          int             `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	FromDate    date.Date       `json:"fromDate"`
	ToDate      date.Date       `json:"toDate"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Period returns the budget's inclusive date range.
func (b *Budget) Period() date.Range {
	return date.Range{From: b.FromDate, To: b.ToDate}
}

// StatusOn classifies the budget against the given day.
func (b *Budget) StatusOn(today date.Date) Status {
	switch {
	case today.After(b.ToDate):
		return StatusExpired
	case today.Before(b.FromDate):
		return StatusFuture
	default:
		return StatusActive
	}
}

// TotalDays returns the inclusive number of days the budget covers.
func (b *Budget) TotalDays() int {
	return b.Period().Days()
}

// RemainingDays returns the number of whole days left until the budget's
// last day. Zero on the last day itself, negative once expired.
func (b *Budget) RemainingDays(today date.Date) int {
	return today.DaysUntil(b.ToDate)
}

func (b *Budget) String() string {
	return fmt.Sprintf("#%d %s: %s (%s)", b.ID, b.Description, b.TotalAmount, b.Period())
}
