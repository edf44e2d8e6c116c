// Package money converts between wire amounts (decimal numbers) and integer
// minor units, and formats amounts for customer-facing text.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	minorUnitExp = 2
	// CurrencySymbol prefixes formatted amounts.
	CurrencySymbol = "₹"
)

// FromAmount converts a decimal amount into cents, rounding half away from zero.
func FromAmount(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitExp).Round(0).IntPart()
}

// ParseAmount parses a decimal string into cents.
func ParseAmount(raw string) (int64, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return FromAmount(amount), nil
}

// ToAmount converts cents into a decimal amount.
func ToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -minorUnitExp)
}

// Multiply returns unit × quantity in cents.
func Multiply(unitCents int64, quantity int) int64 {
	return unitCents * int64(quantity)
}

// Format renders cents as "₹120" or "₹120.50"; whole amounts drop the fraction.
func Format(cents int64) string {
	amount := ToAmount(cents)
	if amount.Equal(amount.Truncate(0)) {
		return CurrencySymbol + amount.StringFixed(0)
	}
	return CurrencySymbol + amount.StringFixed(minorUnitExp)
}

// Amount is a cents value that travels as a JSON number in major units.
type Amount int64

// MarshalJSON writes the amount as a bare JSON number, e.g. 45.5.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(ToAmount(int64(a)).String()), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		var s string
		if strErr := json.Unmarshal(data, &s); strErr != nil {
			return fmt.Errorf("amount: %w", err)
		}
		num = json.Number(s)
	}
	cents, err := ParseAmount(num.String())
	if err != nil {
		return err
	}
	*a = Amount(cents)
	return nil
}

// Cents returns the amount in minor units.
func (a Amount) Cents() int64 {
	return int64(a)
}
