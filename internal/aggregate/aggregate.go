// Package aggregate derives totals, remaining budget, per-category totals and
// chart-ready proportions from a list of expenses.
//
// All functions are pure. Sums are exact in cents; ratios go through
// shopspring/decimal and are exposed as float64 for charts and labels.
package aggregate

import (
	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// FullCircle is the sweep of a pie chart in degrees.
const FullCircle = 360

type (
	// CategoryTotals holds one entry per category that has expenses, in the
	// order each category was first seen.
	CategoryTotals []core.CategoryAmount

	// Share is a category's percentage of the grand total.
	Share struct {
		Category core.Category
		Percent  float64
	}

	// Sweep is a pie wedge: where it starts and how many degrees it covers.
	Sweep struct {
		Category core.Category
		Start    float64
		Degrees  float64
	}

	// Bar is a category's fraction of the grand total, in [0, 1].
	Bar struct {
		Category core.Category
		Fraction float64
	}
)

// Total sums all amounts. Empty input is zero.
func Total(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Remaining is budget minus total. A negative result means overspend.
func Remaining(budget, total core.Money) core.Money {
	return budget.Sub(total)
}

// Overspent reports whether the remaining budget is below zero.
func Overspent(remaining core.Money) bool {
	return remaining.IsNegative()
}

// ByCategory groups amounts by category. Categories without expenses are
// absent, not zero-filled.
func ByCategory(expenses []core.Expense) CategoryTotals {
	index := make(map[core.Category]int)
	var out CategoryTotals
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			index[e.Category] = len(out)
			out = append(out, core.CategoryAmount{Category: e.Category})
			i = len(out) - 1
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// Amount returns the total for cat and whether cat is present.
func (t CategoryTotals) Amount(cat core.Category) (core.Money, bool) {
	for _, ca := range t {
		if ca.Category == cat {
			return ca.Amount, true
		}
	}
	return core.Money{}, false
}

// Sum adds every category total. It always equals Total of the same input.
func (t CategoryTotals) Sum() core.Money {
	var sum core.Money
	for _, ca := range t {
		sum = sum.Add(ca.Amount)
	}
	return sum
}

// Map returns the totals keyed by category.
func (t CategoryTotals) Map() map[core.Category]core.Money {
	m := make(map[core.Category]core.Money, len(t))
	for _, ca := range t {
		m[ca.Category] = ca.Amount
	}
	return m
}

// Percentages returns each category's share of grandTotal in percent.
// The result is empty when grandTotal is not positive; callers show a
// "no data" state instead.
func Percentages(byCategory CategoryTotals, grandTotal core.Money) []Share {
	if grandTotal.Cents <= 0 {
		return nil
	}
	out := make([]Share, 0, len(byCategory))
	for _, ca := range byCategory {
		out = append(out, Share{
			Category: ca.Category,
			Percent:  ratio(ca.Amount, grandTotal, 100),
		})
	}
	return out
}

// ChartSweeps maps each category to a pie wedge of cat/grand*360 degrees, in
// the stable order of byCategory. With a zero grand total every sweep is 0.
func ChartSweeps(byCategory CategoryTotals, grandTotal core.Money) []Sweep {
	out := make([]Sweep, 0, len(byCategory))
	var start float64
	for _, ca := range byCategory {
		var deg float64
		if grandTotal.Cents > 0 {
			deg = ratio(ca.Amount, grandTotal, FullCircle)
		}
		out = append(out, Sweep{Category: ca.Category, Start: start, Degrees: deg})
		start += deg
	}
	return out
}

// BarFractions maps each category to its bar width as a fraction of the
// grand total. With a zero grand total every fraction is 0.
func BarFractions(byCategory CategoryTotals, grandTotal core.Money) []Bar {
	out := make([]Bar, 0, len(byCategory))
	for _, ca := range byCategory {
		var f float64
		if grandTotal.Cents > 0 {
			f = ratio(ca.Amount, grandTotal, 1)
		}
		out = append(out, Bar{Category: ca.Category, Fraction: f})
	}
	return out
}

func ratio(part, whole core.Money, scale int64) float64 {
	return decimal.NewFromInt(part.Cents).
		Mul(decimal.NewFromInt(scale)).
		Div(decimal.NewFromInt(whole.Cents)).
		InexactFloat64()
}
