package report

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/date"
	"github.com/mholmer/giftlog/ledger"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{input: "day", want: Days},
		{input: "days", want: Days},
		{input: "Week", want: Weeks},
		{input: " months ", want: Months},
		{input: "year", want: Years},
		{input: "fortnight", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeWindow(t *testing.T) {
	today := date.MustParse("2025-03-31")

	tests := []struct {
		name     string
		n        int
		unit     Unit
		wantFrom string
	}{
		{name: "seven days", n: 7, unit: Days, wantFrom: "2025-03-24"},
		{name: "two weeks", n: 2, unit: Weeks, wantFrom: "2025-03-17"},
		// Calendar month arithmetic, not 30-day blocks: Feb 31 normalizes.
		{name: "one month from march 31", n: 1, unit: Months, wantFrom: "2025-03-03"},
		{name: "three months", n: 3, unit: Months, wantFrom: "2024-12-31"},
		{name: "one year", n: 1, unit: Years, wantFrom: "2024-03-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := RelativeWindow(today, tt.n, tt.unit)
			assert.NoError(t, err)
			assert.Equal(t, date.MustParse(tt.wantFrom), window.From)
			assert.Equal(t, today, window.To)
		})
	}

	_, err := RelativeWindow(today, 0, Days)
	assert.Error(t, err)
	_, err = RelativeWindow(today, -1, Days)
	assert.Error(t, err)
}

func TestAbsoluteWindow(t *testing.T) {
	window, err := AbsoluteWindow("2024-12-01", "2024-12-31")
	assert.NoError(t, err)
	assert.Equal(t, date.MustParse("2024-12-01"), window.From)
	assert.Equal(t, date.MustParse("2024-12-31"), window.To)

	// Single-day window is valid.
	_, err = AbsoluteWindow("2024-12-24", "2024-12-24")
	assert.NoError(t, err)

	_, err = AbsoluteWindow("2024-12-31", "2024-12-01")
	assert.Error(t, err)
	_, err = AbsoluteWindow("2024-02-30", "2024-03-01")
	assert.Error(t, err)
	_, err = AbsoluteWindow("2024-12-01", "garbage")
	assert.Error(t, err)
}

func mustEntry(t *testing.T, line string) *ledger.Entry {
	t.Helper()
	e := ledger.Parse(line)
	assert.NotZero(t, e)
	return e
}

func TestBuild(t *testing.T) {
	entries := []*ledger.Entry{
		mustEntry(t, "2024-11-30T23:00:00.000Z 999 SEK for Early"),
		mustEntry(t, "2024-12-05T10:00:00.000Z 100 SEK for Alice"),
		mustEntry(t, "2024-12-10T10:00:00.000Z 50 USD for Bob"),
		mustEntry(t, "2024-12-20T10:00:00.000Z 25.50 SEK"),
		mustEntry(t, "2025-01-01T00:00:00.000Z 999 SEK for Late"),
	}
	window := date.Range{From: date.MustParse("2024-12-01"), To: date.MustParse("2024-12-31")}

	r := Build(entries, window)

	assert.False(t, r.Empty())
	assert.True(t, r.MultiCurrency())
	assert.Equal(t, 3, len(r.Itemized))
	assert.True(t, r.Totals["SEK"].Equal(decimal.RequireFromString("125.50")))
	assert.True(t, r.Totals["USD"].Equal(decimal.NewFromInt(50)))

	// Chronological ascending.
	assert.Equal(t, "Alice", r.Itemized[0].Recipient)
	assert.Equal(t, "Bob", r.Itemized[1].Recipient)
}

func TestBuildEmptyWindow(t *testing.T) {
	entries := []*ledger.Entry{
		mustEntry(t, "2024-12-05T10:00:00.000Z 100 SEK for Alice"),
	}
	window := date.Range{From: date.MustParse("2025-06-01"), To: date.MustParse("2025-06-30")}

	r := Build(entries, window)
	assert.True(t, r.Empty())
	assert.False(t, r.MultiCurrency())
	assert.Equal(t, 0, len(r.Totals))
}
