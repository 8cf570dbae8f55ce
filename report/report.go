// Package report builds arbitrary-window spending summaries from the gift
// log: per-currency totals plus a chronological itemization.
package report

import (
	"fmt"
	"strings"

	"github.com/mholmer/giftlog/date"
	"github.com/mholmer/giftlog/ledger"
)

// Unit is a calendar unit for relative windows.
type Unit string

const (
	Days   Unit = "days"
	Weeks  Unit = "weeks"
	Months Unit = "months"
	Years  Unit = "years"
)

// ParseUnit accepts singular and plural unit spellings.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days":
		return Days, nil
	case "week", "weeks":
		return Weeks, nil
	case "month", "months":
		return Months, nil
	case "year", "years":
		return Years, nil
	default:
		return "", fmt.Errorf("unknown unit %q: expected days, weeks, months, or years", s)
	}
}

// RelativeWindow returns the window reaching n units back from today,
// using calendar arithmetic: months subtract calendar months rather than
// 30-day blocks.
func RelativeWindow(today date.Date, n int, unit Unit) (date.Range, error) {
	if n <= 0 {
		return date.Range{}, fmt.Errorf("window length must be positive, got %d", n)
	}
	var from date.Date
	switch unit {
	case Days:
		from = today.AddDays(-n)
	case Weeks:
		from = today.AddDays(-7 * n)
	case Months:
		from = today.AddDate(0, -n, 0)
	case Years:
		from = today.AddDate(-n, 0, 0)
	default:
		return date.Range{}, fmt.Errorf("unknown unit %q", unit)
	}
	return date.Range{From: from, To: today}, nil
}

// AbsoluteWindow validates an explicit from/to pair.
func AbsoluteWindow(from, to string) (date.Range, error) {
	fromDate, err := date.Parse(from)
	if err != nil {
		return date.Range{}, err
	}
	toDate, err := date.Parse(to)
	if err != nil {
		return date.Range{}, err
	}
	if toDate.Before(fromDate) {
		return date.Range{}, fmt.Errorf("from date %s is after to date %s", fromDate, toDate)
	}
	return date.Range{From: fromDate, To: toDate}, nil
}

// Report is the derived spending view for one window.
type Report struct {
	Window   date.Range
	Totals   ledger.Totals
	Itemized []*ledger.Entry
}

// Empty reports whether no spending fell inside the window. Not an error
// condition; the caller renders it as an informational message.
func (r *Report) Empty() bool { return len(r.Itemized) == 0 }

// MultiCurrency reports whether the window spans more than one currency,
// in which case the rendering layer groups the itemization per currency.
func (r *Report) MultiCurrency() bool { return len(r.Totals) > 1 }

// Build filters the log to the window and groups the result by currency.
// The itemized list is always chronological ascending.
func Build(entries []*ledger.Entry, window date.Range) *Report {
	itemized := ledger.Between(entries, window)
	return &Report{
		Window:   window,
		Totals:   ledger.SumByCurrency(itemized),
		Itemized: itemized,
	}
}
