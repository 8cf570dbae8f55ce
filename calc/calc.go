// Package calc computes gift amounts. The amount starts from a base value
// and varies randomly within a configured percentage, biased upward for
// good friends and well-behaved recipients. Low nice scores short-circuit
// the calculation entirely.
package calc

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Defaults applied when the caller or config provides nothing.
const (
	DefaultVariation   = 20
	DefaultFriendScore = 5
	DefaultNiceScore   = 5
	DefaultDecimals    = 2
)

// Input are the knobs for one calculation.
type Input struct {
	BaseValue decimal.Decimal

	// Variation is the maximum deviation from the base value, in percent.
	Variation int

	// FriendScore (1-10) biases the variation upward for close friends.
	FriendScore float64

	// NiceScore (0-10) biases likewise; scores 0-3 trigger fixed cuts
	// instead of a random variation.
	NiceScore float64

	// Decimals is the number of decimal places in the result.
	Decimals int

	// Max and Min pin the result to the variation extremes.
	Max bool
	Min bool
}

// Naughty reports whether the recipient is on the naughty list: a nice
// score of exactly 0, which zeroes the gift.
func (in Input) Naughty() bool { return in.NiceScore == 0 }

// NaughtyAnnotation is appended to log lines for naughty-list gifts.
const NaughtyAnnotation = "on naughty list!"

// Amount computes the gift amount from a roll in [0, 1). Splitting the
// roll out keeps the arithmetic deterministic for tests.
func Amount(in Input, roll float64) decimal.Decimal {
	base := in.BaseValue
	decimals := int32(in.Decimals)

	// Fixed percentages for the low end of the nice scale.
	switch in.NiceScore {
	case 0:
		return decimal.Zero.Round(decimals)
	case 1:
		return base.Mul(decimal.NewFromFloat(0.1)).Round(decimals)
	case 2:
		return base.Mul(decimal.NewFromFloat(0.2)).Round(decimals)
	case 3:
		return base.Mul(decimal.NewFromFloat(0.3)).Round(decimals)
	}

	v := float64(in.Variation) / 100

	var deviation float64
	switch {
	case in.Max:
		deviation = v
	case in.Min:
		deviation = -v
	default:
		// Uniform in [-v, +v), then shifted by the score bias and clamped
		// back into the variation band.
		deviation = v * (2*roll - 1)
		deviation += (in.FriendScore-DefaultFriendScore)*0.01 +
			(in.NiceScore-DefaultNiceScore)*0.01
		if deviation > v {
			deviation = v
		}
		if deviation < -v {
			deviation = -v
		}
	}

	amount := base.Mul(decimal.NewFromFloat(1 + deviation)).Round(decimals)
	if amount.IsNegative() {
		return decimal.Zero.Round(decimals)
	}
	return amount
}

// Random computes an amount using the given random source.
func Random(in Input, rng *rand.Rand) decimal.Decimal {
	return Amount(in, rng.Float64())
}
