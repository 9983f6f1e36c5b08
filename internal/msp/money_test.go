package msp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		minor  int64
	}{
		{"round amount", 49.99, 4999},
		{"whole amount", 20.00, 2000},
		{"half cent rounds up", 0.125, 13},
		{"floating point noise", 19.999999999999996, 2000},
		{"zero", 0, 0},
		{"negative discount", -5.25, -525},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoney(tt.amount, "EUR")
			assert.Equal(t, tt.minor, m.Amount)
			assert.Equal(t, "EUR", m.Currency)
		})
	}
}

func TestMoneyDecimal(t *testing.T) {
	m := NewMoney(49.99, "EUR")
	assert.InDelta(t, 49.99, m.Decimal(), 1e-9)

	// Round-tripping through minor units equals rounding to two decimals
	for _, amount := range []float64{1.005, 12.345, 99.994, 0.01} {
		got := NewMoney(amount, "EUR").Decimal()
		assert.InDelta(t, Round2(amount), got, 0.005, "amount %v", amount)
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 21.0, Round2(21.0000001), 1e-9)
	assert.InDelta(t, 0.21, Round2(0.21), 1e-9)
	assert.InDelta(t, 4.2, Round2(4.199999), 1e-9)
}
