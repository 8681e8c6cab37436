package format

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Display precision is fixed here and nowhere else: upstream stages carry
// full-precision decimals and rounding happens only at this boundary.
const perMillionPlaces = 4

func Currencify(value decimal.Decimal) string {
	return fmt.Sprintf("$%s", value.StringFixed(2))
}

// PerMillionify renders a USD-per-million-tokens price. Four places keep
// sub-cent models (e.g. $0.0375/M) distinguishable.
func PerMillionify(value decimal.Decimal) string {
	return fmt.Sprintf("$%s", value.StringFixed(perMillionPlaces))
}
