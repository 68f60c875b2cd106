// Package core provides the expense domain types and money handling.
//
// This file contains the amount parser shared by the add/edit form and the
// budget field, plus formatting helpers for display.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount of currency in integer cents.
type Money struct {
	Cents int64
}

// maxAmount keeps cents arithmetic well inside int64 when summing.
var maxAmount = decimal.NewFromInt(1_000_000_000_000)

// ParseAmount converts user text to Money rounded half-up to cents.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. Zero is
// a valid amount; negative, empty and non-numeric text is rejected.
//
// Examples:
//
//	ParseAmount("12.34")  -> {1234}, nil
//	ParseAmount("12,34")  -> {1234}, nil
//	ParseAmount("1.005")  -> {101}, nil
//	ParseAmount("abc")    -> {}, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() || d.GreaterThan(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Round(2).Shift(2).IntPart()}, nil
}

// ParseBudget parses the budget field. Anything that is not a valid
// non-negative amount counts as zero.
func ParseBudget(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		return Money{}
	}
	return m
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool { return m.Cents == 0 }

func (m Money) IsNegative() bool { return m.Cents < 0 }

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Input renders the amount the way it is typed into a form field ("12.5" -> "12.50").
func (m Money) Input() string {
	return m.Decimal().StringFixed(2)
}

// String formats the amount as dollars, e.g. "$12.34" or "-$3.00".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	rem := cents % 100
	s := strconv.FormatInt(cents/100, 10) + "."
	if rem < 10 {
		s += "0"
	}
	s += strconv.FormatInt(rem, 10)
	if neg {
		return "-$" + s
	}
	return "$" + s
}
