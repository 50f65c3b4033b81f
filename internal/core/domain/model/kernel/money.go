package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places every Money amount is rounded to.
const CurrencyPrecision int32 = 2

// ErrMoneyIsNegative is returned when a negative amount is used where only
// non-negative prices, fees or tendered amounts are allowed.
var ErrMoneyIsNegative = errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("amount must not be negative"))

// Money is an immutable currency amount rounded to CurrencyPrecision places.
// The zero value is $0.00.
//
// Constructors reject negative input; arithmetic (Sub) may produce a negative
// amount, which callers use to detect shortfalls.
type Money struct {
	amount decimal.Decimal
}

// Zero returns $0.00.
func Zero() Money {
	return Money{}
}

// NewMoney creates a non-negative Money from a decimal amount.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount.Round(CurrencyPrecision)}, nil
}

// MoneyFromString parses amounts such as "10", "10.5" or "10.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MoneyFromFloat converts a float amount, e.g. a price returned by an external service.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// MustMoney parses s and panics on failure. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float, for transports that require it.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt multiplies by a whole quantity, e.g. a cart line quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// MulFloat multiplies by a fractional factor (a distance in km) and rounds
// the result to currency precision.
func (m Money) MulFloat(f float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(f)).Round(CurrencyPrecision)}
}

// Max returns the larger of both amounts.
func (m Money) Max(other Money) Money {
	if other.amount.GreaterThan(m.amount) {
		return other
	}
	return m
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// String returns the amount with exactly two decimals, e.g. "55.00".
func (m Money) String() string {
	return m.amount.StringFixed(CurrencyPrecision)
}

// Format returns the amount with a currency sign, e.g. "$55.00".
func (m Money) Format() string {
	if m.amount.IsNegative() {
		return "-$" + m.amount.Neg().StringFixed(CurrencyPrecision)
	}
	return "$" + m.String()
}

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	m.amount = d.Round(CurrencyPrecision)
	return nil
}
