package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/ledger"
)

// SkippedEntry is a log entry inside the budget window whose currency does
// not match the budget. Skipped entries are surfaced so the caller can warn
// the user; they are never converted or silently dropped.
type SkippedEntry struct {
	Amount    decimal.Decimal
	Currency  string
	Date      time.Time
	Recipient string
}

// Usage is the spending derived from the log for one budget window.
type Usage struct {
	TotalSpent      decimal.Decimal
	Skipped         []SkippedEntry
	MixedCurrencies bool
}

// CalculateUsage filters the log to the budget's inclusive date window and
// sums the entries matching budgetCurrency. Entries in other currencies go
// to Skipped and flip MixedCurrencies.
func CalculateUsage(entries []*ledger.Entry, b *Budget, budgetCurrency string) Usage {
	usage := Usage{TotalSpent: decimal.Zero}

	for _, e := range ledger.Between(entries, b.Period()) {
		if e.Currency == budgetCurrency {
			usage.TotalSpent = usage.TotalSpent.Add(e.Amount)
			continue
		}
		usage.Skipped = append(usage.Skipped, SkippedEntry{
			Amount:    e.Amount,
			Currency:  e.Currency,
			Date:      e.Timestamp,
			Recipient: e.Recipient,
		})
		usage.MixedCurrencies = true
	}
	return usage
}

// Remaining combines the spent total with a prospective new amount against
// the budget's allowance. A negative result means the new amount would put
// the budget over by that magnitude.
func (u Usage) Remaining(b *Budget, newAmount decimal.Decimal) decimal.Decimal {
	return b.TotalAmount.Sub(u.TotalSpent.Add(newAmount))
}

// OverBudget reports whether spending plus the prospective amount exceeds
// the allowance.
func (u Usage) OverBudget(b *Budget, newAmount decimal.Decimal) bool {
	return u.Remaining(b, newAmount).IsNegative()
}
