// Package core holds the pure domain model: the meal ledger, pricing
// policy, weekly menu plan, and the monthly aggregation over them.
//
// This file contains money parsing and handling utilities. Amounts are
// stored as integer cents; the JSON form is a plain decimal number so that
// bundles written by the web client ({"menu":5,"vianda":3.5}) parse
// unchanged.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents. Unit costs are non-negative; derived values
// such as savings may go negative.
type Money struct {
	Cents int64
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (3.50) and comma (3,50)
// separators are accepted. Zero is a legal amount here: a zero unit cost
// and the fixed-plan sentinel are both meaningful.
//
// Examples:
//
//	ParseDecimalToCents("3.5")   -> 350, nil
//	ParseDecimalToCents("3,50")  -> 350, nil
//	ParseDecimalToCents("0")     -> 0, nil
//	ParseDecimalToCents("1.005") -> 101, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Mul returns the amount times a non-negative count.
func (m Money) Mul(n int) Money {
	return Money{Cents: m.Cents * int64(n)}
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o. The result may be negative.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Float returns the decimal value for serialization and display. Use cents
// for arithmetic.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// decimalString renders the amount with the minimum number of decimals, so
// whole amounts serialize as "5" rather than "5.00".
func (m Money) decimalString() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	whole, rem := c/100, c%100
	var s string
	switch {
	case rem == 0:
		s = strconv.FormatInt(whole, 10)
	case rem%10 == 0:
		s = fmt.Sprintf("%d.%d", whole, rem/10)
	default:
		s = fmt.Sprintf("%d.%02d", whole, rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON encodes the amount as a bare decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.decimalString()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string and converts it
// to cents with half-up rounding.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		// Tolerate quoted numbers.
		var s string
		if err2 := json.Unmarshal(data, &s); err2 != nil {
			return fmt.Errorf("money: %w", err)
		}
		raw = json.Number(s)
	}
	str := raw.String()
	neg := strings.HasPrefix(str, "-")
	cents, err := ParseDecimalToCents(strings.TrimPrefix(str, "-"))
	if err != nil {
		return fmt.Errorf("money %q: %w", str, err)
	}
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}

// FormatARS formats cents as an Argentine-style currency string, comma as
// the decimal separator (e.g. "$12,34"). Presentation only.
func FormatARS(m Money) string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10) + "," + fmt.Sprintf("%02d", c%100)
	if neg {
		return "-$" + s
	}
	return "$" + s
}
