package msp

import "math"

// Money is an amount in minor currency units (cents), the only integer-safe
// representation the PSP accepts for the authoritative transaction amount.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney converts a decimal amount into minor units, rounding half-up to
// two decimal places before scaling. Currency-agnostic by design of the
// wire protocol: every supported currency uses two decimals.
func NewMoney(amount float64, currency string) Money {
	return Money{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
	}
}

// Decimal returns the two-decimal representation of the amount
func (m Money) Decimal() float64 {
	return float64(m.Amount) / 100
}

// Round2 rounds a decimal amount half-up to two decimal places
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
