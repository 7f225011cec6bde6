package pricing

import (
	"github.com/shopspring/decimal"
)

// Processing fee charged on every estimate: 2.9% of the amount plus a
// fixed 30 cents. The fixed part applies even to a zero amount.
const (
	feePercentage   = "0.029"
	fixedFeeCents   = 30
	centsPerDollar  = 100
	nftDiscountRate = "0.10"
)

var (
	feeRate      = decimal.RequireFromString(feePercentage)
	discountRate = decimal.RequireFromString(nftDiscountRate)
	hundred      = decimal.NewFromInt(centsPerDollar)
)

// DollarsToCents converts a dollar amount to integer cents, rounding
// half away from zero. This is the single rounding rule for all money
// math in the service.
func DollarsToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// CentsToDollars is for display only. Never persist or transmit the
// result; amounts cross boundaries as integer cents.
func CentsToDollars(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(hundred).Float64()
	return f
}

// ProcessingFeeCents computes the payment-processing fee in cents for
// an amount given in cents.
func ProcessingFeeCents(amountCents int64) int64 {
	variable := decimal.NewFromInt(amountCents).Mul(feeRate).Round(0).IntPart()
	return variable + fixedFeeCents
}

// NFTDiscountCents returns the flat loyalty discount for a subtotal in
// cents, rounded half away from zero.
func NFTDiscountCents(subtotalCents int64) int64 {
	return decimal.NewFromInt(subtotalCents).Mul(discountRate).Round(0).IntPart()
}
