// Package person keeps the registry of gift recipients and their scores.
// Records are keyed case-insensitively by name; the display casing is
// preserved on the record itself.
package person

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Person is one stored recipient profile. Score fields are optional:
// a nil score means "not set" and ranks below every valid score.
type Person struct {
	Name        string           `json:"name"`
	NiceScore   *float64         `json:"niceScore,omitempty"`
	FriendScore *float64         `json:"friendScore,omitempty"`
	BaseValue   *decimal.Decimal `json:"baseValue,omitempty"`
	Currency    string           `json:"currency,omitempty"`
}

// Key returns the case-insensitive lookup key for a name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName derives a presentable name from a lookup key, used for
// recipients that appear in the log but have no stored profile.
func DisplayName(key string) string {
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// ValidateNiceScore checks the 0-10 range. Score 0 is meaningful: it marks
// the naughty list.
func ValidateNiceScore(score float64) error {
	if score < 0 || score > 10 {
		return fmt.Errorf("nice score must be between 0 and 10, got %g", score)
	}
	return nil
}

// ValidateFriendScore checks the 1-10 range.
func ValidateFriendScore(score float64) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("friend score must be between 1 and 10, got %g", score)
	}
	return nil
}
