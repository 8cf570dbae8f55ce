package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    Date
	}{
		{name: "valid date", input: "2024-12-01", want: New(2024, time.December, 1)},
		{name: "leap day", input: "2024-02-29", want: New(2024, time.February, 29)},
		{name: "rollover day rejected", input: "2024-02-30", wantErr: true},
		{name: "rollover month rejected", input: "2024-13-01", wantErr: true},
		{name: "leap day in non-leap year rejected", input: "2023-02-29", wantErr: true},
		{name: "wrong separator", input: "2024/12/01", wantErr: true},
		{name: "missing zero padding", input: "2024-1-2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	d := MustParse("2025-09-07")
	parsed, err := Parse(d.String())
	assert.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func TestComparisons(t *testing.T) {
	a := MustParse("2024-12-01")
	b := MustParse("2024-12-31")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.True(t, a.Equal(MustParse("2024-12-01")))
}

func TestDayArithmetic(t *testing.T) {
	d := MustParse("2024-02-28")

	assert.Equal(t, MustParse("2024-02-29"), d.AddDays(1))
	assert.Equal(t, MustParse("2024-03-01"), d.AddDays(2))
	assert.Equal(t, MustParse("2024-01-28"), d.AddDate(0, -1, 0))
	assert.Equal(t, 31, MustParse("2024-12-01").DaysUntil(MustParse("2025-01-01")))
	assert.Equal(t, -1, MustParse("2024-12-02").DaysUntil(MustParse("2024-12-01")))
}

func TestRangeContains(t *testing.T) {
	r := Range{From: MustParse("2024-12-01"), To: MustParse("2024-12-31")}

	assert.True(t, r.Contains(MustParse("2024-12-01")))
	assert.True(t, r.Contains(MustParse("2024-12-31")))
	assert.True(t, r.Contains(MustParse("2024-12-15")))
	assert.False(t, r.Contains(MustParse("2024-11-30")))
	assert.False(t, r.Contains(MustParse("2025-01-01")))
}

func TestRangeContainsTime(t *testing.T) {
	r := Range{From: MustParse("2024-12-01"), To: MustParse("2024-12-31")}

	assert.True(t, r.ContainsTime(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.ContainsTime(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.ContainsTime(time.Date(2024, 11, 30, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.ContainsTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{From: MustParse("2024-12-01"), To: MustParse("2024-12-31")}

	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{name: "fully inside", other: Range{MustParse("2024-12-10"), MustParse("2024-12-20")}, want: true},
		{name: "fully covering", other: Range{MustParse("2024-11-01"), MustParse("2025-01-31")}, want: true},
		{name: "touching start boundary", other: Range{MustParse("2024-11-01"), MustParse("2024-12-01")}, want: true},
		{name: "touching end boundary", other: Range{MustParse("2024-12-31"), MustParse("2025-01-31")}, want: true},
		{name: "before", other: Range{MustParse("2024-11-01"), MustParse("2024-11-30")}, want: false},
		{name: "after", other: Range{MustParse("2025-01-01"), MustParse("2025-01-31")}, want: false},
		{name: "same day budget inside", other: Range{MustParse("2024-12-15"), MustParse("2024-12-15")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestRangeDays(t *testing.T) {
	assert.Equal(t, 31, Range{MustParse("2024-12-01"), MustParse("2024-12-31")}.Days())
	assert.Equal(t, 1, Range{MustParse("2024-12-01"), MustParse("2024-12-01")}.Days())
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-06-15")

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(data))

	var decoded Date
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"2024-02-30"`), &decoded))
}
