package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxMoney is the largest amount a DECIMAL(10,2) column holds, in cents.
const MaxMoney Money = 9_999_999_999

var (
	ErrInvalidDecimal = errors.New("invalid decimal value")
	ErrTooPrecise     = errors.New("at most 2 decimal places allowed")
	ErrAmountOverflow = errors.New("amount exceeds the supported range")
)

// Money is an amount in euro cents.
type Money int64

// ParseMoney reads a "45.00" style decimal into cents without float conversion.
func ParseMoney(s string) (Money, error) {
	v, err := parseFixed2(s)
	if err != nil {
		return 0, err
	}
	return Money(v), nil
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return formatFixed2(int64(m), true)
}

// MarshalJSON emits the amount as a "90.00" string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := unmarshalFixed2(b)
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// Times multiplies the amount by q and rounds half-up to the cent.
func (m Money) Times(q Quantity) (Money, error) {
	p := new(big.Int).Mul(big.NewInt(int64(m)), big.NewInt(int64(q)))
	neg := p.Sign() < 0
	p.Abs(p)
	p.Add(p, big.NewInt(50))
	p.Quo(p, big.NewInt(100))
	if neg {
		p.Neg(p)
	}
	if !p.IsInt64() {
		return 0, ErrAmountOverflow
	}
	out := Money(p.Int64())
	if out > MaxMoney || out < -MaxMoney {
		return 0, ErrAmountOverflow
	}
	return out, nil
}

// Quantity is a non-integral count (kilograms, seats) in hundredths.
type Quantity int64

func QuantityFromInt(n int) Quantity {
	return Quantity(int64(n) * 100)
}

func ParseQuantity(s string) (Quantity, error) {
	v, err := parseFixed2(s)
	if err != nil {
		return 0, err
	}
	return Quantity(v), nil
}

// String trims trailing zero decimals: 2, 2.5, 2.25.
func (q Quantity) String() string {
	return formatFixed2(int64(q), false)
}

// Decimal renders the quantity with exactly two decimals for DECIMAL columns.
func (q Quantity) Decimal() string {
	return formatFixed2(int64(q), true)
}

// MarshalJSON emits a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	v, err := unmarshalFixed2(b)
	if err != nil {
		return err
	}
	*q = Quantity(v)
	return nil
}

func unmarshalFixed2(b []byte) (int64, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		return parseFixed2(s)
	}
	return parseFixed2(string(b))
}

func parseFixed2(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidDecimal
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, ErrInvalidDecimal
	}
	if hasDot && frac == "" {
		return 0, ErrInvalidDecimal
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidDecimal
	}
	if len(frac) > 2 {
		if strings.Trim(frac[2:], "0") != "" {
			return 0, ErrTooPrecise
		}
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > 15 {
		return 0, ErrAmountOverflow
	}
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidDecimal
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidDecimal
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	return v, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatFixed2(v int64, fixed bool) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/100, v%100
	switch {
	case fixed:
		return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	case frac == 0:
		return fmt.Sprintf("%s%d", sign, whole)
	case frac%10 == 0:
		return fmt.Sprintf("%s%d.%d", sign, whole, frac/10)
	default:
		return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	}
}
