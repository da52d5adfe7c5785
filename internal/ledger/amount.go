package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Bounds on goal amounts. Amounts are whole currency units with at most two
// decimal places and fewer than 16 integer digits.
const (
	MaxAmountIntegerDigits  = 15
	MaxAmountFractionDigits = 2

	// exponents below this are rejected before any rescaling
	minAmountExponent = -40
)

var (
	maxAmount   = decimal.New(1, MaxAmountIntegerDigits)
	maxMinorInt = decimal.NewFromInt(math.MaxInt64)
)

// checkAmount rejects amounts outside the bounds above. Zero comes back as
// decimal.Zero whatever exponent it was parsed with.
func checkAmount(field string, v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsZero() {
		return decimal.Zero, nil
	}
	exp := v.Exponent()
	if exp >= MaxAmountIntegerDigits {
		return decimal.Decimal{}, validationf("%s is too large", field)
	}
	if exp < minAmountExponent {
		return decimal.Decimal{}, validationf("%s can have at most %d decimal places", field, MaxAmountFractionDigits)
	}
	if v.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, validationf("%s is too large", field)
	}
	if !v.Equal(v.Truncate(MaxAmountFractionDigits)) {
		return decimal.Decimal{}, validationf("%s can have at most %d decimal places", field, MaxAmountFractionDigits)
	}
	return v, nil
}

// descriptionAmount renders an amount for activity descriptions: "40000", "12.50".
func descriptionAmount(v decimal.Decimal) string {
	if v.IsInteger() {
		return v.Truncate(0).String()
	}
	return v.StringFixed(MaxAmountFractionDigits)
}
