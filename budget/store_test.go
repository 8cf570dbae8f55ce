package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/date"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join(t.TempDir(), "budgets.json"))
	assert.NoError(t, err)
	return s
}

func TestLoadFallbacks(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		s := tempStore(t)
		assert.Equal(t, 0, len(s.List()))
		assert.Equal(t, "", s.Warning())
	})

	t.Run("corrupt file starts empty with warning", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "budgets.json")
		assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		s, err := Load(path)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(s.List()))
		assert.NotEqual(t, "", s.Warning())
	})
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		from   string
		to     string
	}{
		{name: "zero amount", amount: "0", from: "2024-12-01", to: "2024-12-31"},
		{name: "negative amount", amount: "-100", from: "2024-12-01", to: "2024-12-31"},
		{name: "rollover from date", amount: "100", from: "2024-02-30", to: "2024-03-31"},
		{name: "rollover to month", amount: "100", from: "2024-12-01", to: "2024-13-01"},
		{name: "malformed from date", amount: "100", from: "Dec 1st", to: "2024-12-31"},
		{name: "from after to", amount: "100", from: "2024-12-31", to: "2024-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			_, err := s.Add(decimal.RequireFromString(tt.amount), tt.from, tt.to, "")
			assert.Error(t, err)
			assert.Equal(t, 0, len(s.List()))
		})
	}
}

func TestAddAssignsIDsAndDefaults(t *testing.T) {
	s := tempStore(t)

	first, err := s.Add(decimal.NewFromInt(1000), "2024-12-01", "2024-12-31", "")
	assert.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Budget 1", first.Description)
	assert.NotZero(t, first.CreatedAt)

	second, err := s.Add(decimal.NewFromInt(500), "2025-01-01", "2025-01-31", "January gifts")
	assert.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "January gifts", second.Description)
}

func TestOverlapInvariant(t *testing.T) {
	s := tempStore(t)
	_, err := s.Add(decimal.NewFromInt(1000), "2024-12-01", "2024-12-31", "December")
	assert.NoError(t, err)

	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "identical period", from: "2024-12-01", to: "2024-12-31"},
		{name: "inside", from: "2024-12-10", to: "2024-12-20"},
		{name: "covering", from: "2024-11-01", to: "2025-01-31"},
		{name: "touching start", from: "2024-11-15", to: "2024-12-01"},
		{name: "touching end", from: "2024-12-31", to: "2025-01-15"},
		{name: "same day inside", from: "2024-12-24", to: "2024-12-24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(decimal.NewFromInt(100), tt.from, tt.to, "")
			assert.Error(t, err)
		})
	}

	// Adjacent but not touching is fine.
	_, err = s.Add(decimal.NewFromInt(100), "2025-01-01", "2025-01-31", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(s.List()))
}

func TestEdit(t *testing.T) {
	s := tempStore(t)
	b, err := s.Add(decimal.NewFromInt(1000), "2024-12-01", "2024-12-31", "December")
	assert.NoError(t, err)
	_, err = s.Add(decimal.NewFromInt(500), "2025-01-01", "2025-01-31", "January")
	assert.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Edit(99, EditRequest{})
		assert.Error(t, err)
	})

	t.Run("amount only", func(t *testing.T) {
		amount := decimal.NewFromInt(1500)
		edited, err := s.Edit(b.ID, EditRequest{Amount: &amount})
		assert.NoError(t, err)
		assert.True(t, edited.TotalAmount.Equal(amount))
		assert.Equal(t, date.MustParse("2024-12-01"), edited.FromDate)
	})

	t.Run("dates revalidated against own period excluded", func(t *testing.T) {
		// Shrinking within its own old period must not collide with itself.
		from := "2024-12-05"
		edited, err := s.Edit(b.ID, EditRequest{From: &from})
		assert.NoError(t, err)
		assert.Equal(t, date.MustParse("2024-12-05"), edited.FromDate)
	})

	t.Run("overlap with other budget rejected and state kept", func(t *testing.T) {
		to := "2025-01-15"
		_, err := s.Edit(b.ID, EditRequest{To: &to})
		assert.Error(t, err)
		assert.Equal(t, date.MustParse("2024-12-31"), s.Get(b.ID).ToDate)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		to := "2024-12-32"
		_, err := s.Edit(b.ID, EditRequest{To: &to})
		assert.Error(t, err)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		amount := decimal.Zero
		_, err := s.Edit(b.ID, EditRequest{Amount: &amount})
		assert.Error(t, err)
	})
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.json")

	s, err := Load(path)
	assert.NoError(t, err)
	_, err = s.Add(decimal.RequireFromString("1000.50"), "2024-12-01", "2024-12-31", "December")
	assert.NoError(t, err)

	reloaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(reloaded.List()))

	b := reloaded.Get(1)
	assert.NotZero(t, b)
	assert.True(t, b.TotalAmount.Equal(decimal.RequireFromString("1000.50")))
	assert.Equal(t, date.MustParse("2024-12-01"), b.FromDate)
	assert.Equal(t, "December", b.Description)

	// The id counter survives the round trip.
	next, err := reloaded.Add(decimal.NewFromInt(1), "2025-02-01", "2025-02-28", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

func TestActiveOn(t *testing.T) {
	s := tempStore(t)
	_, err := s.Add(decimal.NewFromInt(1000), "2024-12-01", "2024-12-31", "December")
	assert.NoError(t, err)
	_, err = s.Add(decimal.NewFromInt(500), "2025-01-01", "2025-01-31", "January")
	assert.NoError(t, err)

	active := s.ActiveOn(date.MustParse("2024-12-15"))
	assert.NotZero(t, active)
	assert.Equal(t, "December", active.Description)

	assert.Zero(t, s.ActiveOn(date.MustParse("2024-11-30")))
	assert.Zero(t, s.ActiveOn(date.MustParse("2025-02-01")))
}
