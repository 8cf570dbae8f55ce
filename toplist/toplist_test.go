package toplist

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/person"
)

func floatPtr(v float64) *float64 { return &v }

func mustEntry(t *testing.T, line string) *ledger.Entry {
	t.Helper()
	e := ledger.Parse(line)
	assert.NotZero(t, e)
	return e
}

func testPersons() map[string]*person.Person {
	return map[string]*person.Person{
		"alice": {Name: "Alice", NiceScore: floatPtr(9), FriendScore: floatPtr(7)},
		"bob":   {Name: "Bob", NiceScore: floatPtr(4)},
		"carol": {Name: "Carol", FriendScore: floatPtr(10)},
	}
}

func TestRankByTotalSingleCurrency(t *testing.T) {
	entries := []*ledger.Entry{
		mustEntry(t, "2024-12-01T10:00:00.000Z 100 SEK for Alice"),
		mustEntry(t, "2024-12-02T10:00:00.000Z 300 SEK for Bob"),
		mustEntry(t, "2024-12-03T10:00:00.000Z 200 SEK for Dave"),
	}

	ranking := Rank(testPersons(), entries, Options{SortBy: ByTotal})

	assert.False(t, ranking.IsPerCurrency())
	list := ranking.Single
	assert.Equal(t, 4, len(list))

	assert.Equal(t, "Bob", list[0].Name)
	assert.True(t, list[0].Total("SEK").Equal(decimal.NewFromInt(300)))
	// Dave only appears in the log; display name is capitalized.
	assert.Equal(t, "Dave", list[1].Name)
	assert.Zero(t, list[1].Person)
	assert.Equal(t, "Alice", list[2].Name)
	// Carol has no gifts at all and sorts after everyone with a total.
	assert.Equal(t, "Carol", list[3].Name)
	assert.True(t, list[3].Total("SEK").IsZero())
}

func TestRankByTotalMultiCurrencySplits(t *testing.T) {
	entries := []*ledger.Entry{
		mustEntry(t, "2024-12-01T10:00:00.000Z 100 SEK for Alice"),
		mustEntry(t, "2024-12-02T10:00:00.000Z 300 SEK for Bob"),
		mustEntry(t, "2024-12-03T10:00:00.000Z 50 USD for Alice"),
		mustEntry(t, "2024-12-04T10:00:00.000Z 20 USD for Carol"),
	}

	ranking := Rank(testPersons(), entries, Options{SortBy: ByTotal})

	assert.True(t, ranking.IsPerCurrency())
	assert.Equal(t, []string{"SEK", "USD"}, ranking.Currencies())

	sek := ranking.PerCurrency["SEK"]
	assert.Equal(t, 2, len(sek))
	assert.Equal(t, "Bob", sek[0].Name)
	assert.Equal(t, "Alice", sek[1].Name)

	usd := ranking.PerCurrency["USD"]
	assert.Equal(t, 2, len(usd))
	assert.Equal(t, "Alice", usd[0].Name)
	assert.Equal(t, "Carol", usd[1].Name)
}

func TestRankByTotalCurrencyFilter(t *testing.T) {
	entries := []*ledger.Entry{
		mustEntry(t, "2024-12-01T10:00:00.000Z 100 SEK for Alice"),
		mustEntry(t, "2024-12-02T10:00:00.000Z 50 USD for Bob"),
	}

	ranking := Rank(testPersons(), entries, Options{SortBy: ByTotal, Currency: "USD"})

	assert.False(t, ranking.IsPerCurrency())
	assert.Equal(t, 1, len(ranking.Single))
	assert.Equal(t, "Bob", ranking.Single[0].Name)
}

func TestRankByScores(t *testing.T) {
	ranking := Rank(testPersons(), nil, Options{SortBy: ByNiceScore})
	assert.False(t, ranking.IsPerCurrency())
	list := ranking.Single

	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "Bob", list[1].Name)
	// Carol has no nice score: reported as -1, ranked last.
	assert.Equal(t, "Carol", list[2].Name)
	assert.Equal(t, -1.0, list[2].NiceScore())

	ranking = Rank(testPersons(), nil, Options{SortBy: ByFriendScore})
	assert.Equal(t, "Carol", ranking.Single[0].Name)
	assert.Equal(t, "Alice", ranking.Single[1].Name)
	assert.Equal(t, "Bob", ranking.Single[2].Name)
}

func TestRankLength(t *testing.T) {
	persons := make(map[string]*person.Person)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		persons[name] = &person.Person{Name: name}
	}

	ranking := Rank(persons, nil, Options{SortBy: ByNiceScore, Length: 2})
	assert.Equal(t, 2, len(ranking.Single))

	// Zero length falls back to the default.
	ranking = Rank(persons, nil, Options{SortBy: ByNiceScore})
	assert.Equal(t, 5, len(ranking.Single))
}

func TestRankStableTies(t *testing.T) {
	persons := map[string]*person.Person{
		"zed":  {Name: "Zed", NiceScore: floatPtr(5)},
		"anna": {Name: "Anna", NiceScore: floatPtr(5)},
		"mia":  {Name: "Mia", NiceScore: floatPtr(5)},
	}

	ranking := Rank(persons, nil, Options{SortBy: ByNiceScore})
	// Ties keep sorted key order.
	assert.Equal(t, "Anna", ranking.Single[0].Name)
	assert.Equal(t, "Mia", ranking.Single[1].Name)
	assert.Equal(t, "Zed", ranking.Single[2].Name)
}

func TestRankEmptyInputs(t *testing.T) {
	ranking := Rank(nil, nil, Options{SortBy: ByTotal})
	assert.False(t, ranking.IsPerCurrency())
	assert.Equal(t, 0, len(ranking.Single))
}
