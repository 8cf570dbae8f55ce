// Package toplist ranks gift recipients. It merges the person registry
// with per-recipient gift sums derived from the log and produces top-N
// views by total value or by a stored score.
//
// Ranking by total never blends currencies: summing SEK and USD without
// conversion would be meaningless, so a multi-currency dataset yields one
// ranked sub-list per currency instead of a single list.
package toplist

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/person"
)

// SortBy selects the ranking criterion.
type SortBy string

const (
	ByTotal       SortBy = "total"
	ByNiceScore   SortBy = "nice-score"
	ByFriendScore SortBy = "friend-score"
)

// DefaultLength is the number of rows kept per list when none is given.
const DefaultLength = 10

// Row is one ranked person: the stored profile (may be nil for recipients
// that only appear in the log) merged with their per-currency gift totals.
type Row struct {
	Key    string
	Name   string
	Person *person.Person
	Totals ledger.Totals
}

// NiceScore returns the row's nice score, or -1 when not set so missing
// scores rank below the whole valid range.
func (r Row) NiceScore() float64 {
	if r.Person == nil || r.Person.NiceScore == nil {
		return -1
	}
	return *r.Person.NiceScore
}

// FriendScore returns the row's friend score, or -1 when not set.
func (r Row) FriendScore() float64 {
	if r.Person == nil || r.Person.FriendScore == nil {
		return -1
	}
	return *r.Person.FriendScore
}

// Total returns the row's total in the given currency, zero when absent.
func (r Row) Total(currency string) decimal.Decimal {
	return r.Totals[currency]
}

// List is a ranked, truncated sequence of rows.
type List []Row

// Ranking is a tagged result: exactly one of Single or PerCurrency is set.
// PerCurrency is produced only when ranking by total over a dataset that
// spans several currencies with no filter to pick one.
type Ranking struct {
	Single      List
	PerCurrency map[string]List
}

// IsPerCurrency reports whether the ranking is split by currency.
func (r Ranking) IsPerCurrency() bool { return r.PerCurrency != nil }

// Currencies returns the sorted currencies of a per-currency ranking.
func (r Ranking) Currencies() []string {
	codes := make([]string, 0, len(r.PerCurrency))
	for c := range r.PerCurrency {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Options configures a ranking.
type Options struct {
	SortBy SortBy

	// Length truncates each produced list; DefaultLength when zero.
	Length int

	// Currency restricts a by-total ranking to one currency. Ignored for
	// score rankings.
	Currency string
}

// Rank merges the registry with the log and produces the requested view.
// The merge is a union keyed case-insensitively: persons without gifts
// appear with empty totals, log-only recipients get a capitalized display
// name. Ties keep key order (stable sort over sorted keys).
func Rank(persons map[string]*person.Person, entries []*ledger.Entry, opts Options) Ranking {
	rows := merge(persons, entries)

	length := opts.Length
	if length <= 0 {
		length = DefaultLength
	}

	switch opts.SortBy {
	case ByNiceScore:
		return Ranking{Single: sortByScore(rows, Row.NiceScore, length)}
	case ByFriendScore:
		return Ranking{Single: sortByScore(rows, Row.FriendScore, length)}
	default:
		return rankByTotal(rows, opts.Currency, length)
	}
}

// merge builds the union of registry keys and log recipient keys, in
// sorted key order.
func merge(persons map[string]*person.Person, entries []*ledger.Entry) []Row {
	giftSums := ledger.SumByRecipient(entries)

	keys := make(map[string]struct{}, len(persons)+len(giftSums))
	for k := range persons {
		keys[k] = struct{}{}
	}
	for k := range giftSums {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)

	rows := make([]Row, 0, len(sorted))
	for _, key := range sorted {
		row := Row{Key: key, Totals: giftSums[key]}
		if row.Totals == nil {
			row.Totals = make(ledger.Totals)
		}
		if p := persons[key]; p != nil {
			row.Person = p
			row.Name = p.Name
		} else {
			row.Name = person.DisplayName(key)
		}
		rows = append(rows, row)
	}
	return rows
}

// sortByScore ranks all rows descending by the given score, ignoring
// currency entirely.
func sortByScore(rows []Row, score func(Row) float64, length int) List {
	ranked := slices.Clone(rows)
	slices.SortStableFunc(ranked, func(a, b Row) int {
		switch {
		case score(a) > score(b):
			return -1
		case score(a) < score(b):
			return 1
		default:
			return 0
		}
	})
	return truncate(ranked, length)
}

// rankByTotal ranks rows by gift total. With a currency filter, only rows
// with a non-zero total in that currency compete. Without one, a dataset
// spanning a single currency yields one list; several currencies yield one
// sub-list each.
func rankByTotal(rows []Row, currency string, length int) Ranking {
	if currency != "" {
		return Ranking{Single: totalList(rows, currency, length)}
	}

	observed := make(map[string]struct{})
	for _, row := range rows {
		for c := range row.Totals {
			observed[c] = struct{}{}
		}
	}

	if len(observed) > 1 {
		perCurrency := make(map[string]List, len(observed))
		for c := range observed {
			perCurrency[c] = totalList(rows, c, length)
		}
		return Ranking{PerCurrency: perCurrency}
	}

	// Zero or one currency in the whole dataset: a single list is safe.
	var only string
	for c := range observed {
		only = c
	}
	if only == "" {
		return Ranking{Single: truncate(slices.Clone(rows), length)}
	}
	ranked := slices.Clone(rows)
	slices.SortStableFunc(ranked, func(a, b Row) int {
		return b.Total(only).Cmp(a.Total(only))
	})
	return Ranking{Single: truncate(ranked, length)}
}

// totalList ranks the rows that have a non-zero total in the currency.
func totalList(rows []Row, currency string, length int) List {
	var competing []Row
	for _, row := range rows {
		if !row.Total(currency).IsZero() {
			competing = append(competing, row)
		}
	}
	slices.SortStableFunc(competing, func(a, b Row) int {
		return b.Total(currency).Cmp(a.Total(currency))
	})
	return truncate(competing, length)
}

func truncate(rows []Row, length int) List {
	if len(rows) > length {
		rows = rows[:length]
	}
	return List(rows)
}
