package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/mholmer/giftlog/date"
)

// Totals maps a currency code to an accumulated amount.
type Totals map[string]decimal.Decimal

// Add accumulates an amount under its currency.
func (t Totals) Add(currency string, amount decimal.Decimal) {
	t[currency] = t[currency].Add(amount)
}

// Currencies returns the sorted currency codes present in the totals.
func (t Totals) Currencies() []string {
	codes := make([]string, 0, len(t))
	for c := range t {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Last returns the most recent entry, scanning from the end of the log.
// Returns nil for an empty log.
func Last(entries []*Entry) *Entry {
	if len(entries) == 0 {
		return nil
	}
	return entries[len(entries)-1]
}

// LastFor returns the most recent entry whose recipient matches name,
// case-insensitively. A blank name matches nothing.
func LastFor(entries []*Entry, name string) *Entry {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].MatchesRecipient(name) {
			return entries[i]
		}
	}
	return nil
}

// Between returns the entries whose timestamps fall inside the inclusive
// calendar window, sorted ascending by timestamp regardless of input order.
func Between(entries []*Entry, window date.Range) []*Entry {
	var matched []*Entry
	for _, e := range entries {
		if window.ContainsTime(e.Timestamp) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	return matched
}

// SumByCurrency accumulates entry amounts grouped by currency.
func SumByCurrency(entries []*Entry) Totals {
	totals := make(Totals)
	for _, e := range entries {
		totals.Add(e.Currency, e.Amount)
	}
	return totals
}

// Currencies returns the sorted distinct currencies observed in the log.
func Currencies(entries []*Entry) []string {
	return SumByCurrency(entries).Currencies()
}

// SumByRecipient groups entry amounts by lowercased recipient name, each
// bucket holding per-currency totals. Entries without a recipient are
// excluded.
func SumByRecipient(entries []*Entry) map[string]Totals {
	sums := make(map[string]Totals)
	for _, e := range entries {
		if e.Recipient == "" {
			continue
		}
		key := strings.ToLower(e.Recipient)
		if sums[key] == nil {
			sums[key] = make(Totals)
		}
		sums[key].Add(e.Currency, e.Amount)
	}
	return sums
}
