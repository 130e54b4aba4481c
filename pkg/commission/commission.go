// Package commission splits a gross sale amount into the platform fee and the seller payout.
package commission

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultRate is the platform commission taken from every completed sale.
var DefaultRate = decimal.RequireFromString("0.04")

// ErrNegativeAmount is returned when the gross amount is below zero.
var ErrNegativeAmount = errors.New("gross amount must not be negative")

// Split is the result of a commission computation, in currency minor units.
type Split struct {
	Commission int64
	NetAmount  int64
}

// Calculator computes commission at a fixed rate.
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator creates a Calculator. A zero rate falls back to DefaultRate.
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if rate.IsZero() {
		rate = DefaultRate
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("commission rate %s must be in [0, 1)", rate.String())
	}
	return &Calculator{rate: rate}, nil
}

// Rate returns the configured rate.
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Compute splits gross (minor units). The commission is rounded half away from zero to
// a whole minor unit and the net amount is derived by subtraction, so the two always sum to gross.
func (c *Calculator) Compute(gross int64) (Split, error) {
	if gross < 0 {
		return Split{}, ErrNegativeAmount
	}
	commission := decimal.NewFromInt(gross).Mul(c.rate).Round(0).IntPart()
	return Split{
		Commission: commission,
		NetAmount:  gross - commission,
	}, nil
}
