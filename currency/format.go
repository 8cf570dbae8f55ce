// Package currency provides display formatting and exchange-rate
// conversion. Both are consumed by the CLI layer only: the aggregation
// engine never converts and never formats.
package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders an amount with its currency using the ISO minor-unit and
// symbol rules known to go-money. Unknown codes fall back to a plain
// "amount CODE" rendering.
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
