package aggregate

import "expensetracker/internal/core"

// Breakdown is everything the screen and the chart need, computed in one pass.
type Breakdown struct {
	Budget     core.Money
	Total      core.Money
	Remaining  core.Money
	Overspent  bool
	ByCategory CategoryTotals
	Shares     []Share
	Sweeps     []Sweep
	Bars       []Bar
}

// HasData reports whether there is anything to chart.
func (b Breakdown) HasData() bool {
	return b.Total.Cents > 0
}

// Summarize computes the full breakdown for expenses against budget.
func Summarize(expenses []core.Expense, budget core.Money) Breakdown {
	return FromTotals(ByCategory(expenses), budget)
}

// FromTotals computes the breakdown from per-category totals that were
// already summed, e.g. by the store. The grand total is their sum.
func FromTotals(byCat CategoryTotals, budget core.Money) Breakdown {
	total := byCat.Sum()
	remaining := Remaining(budget, total)
	return Breakdown{
		Budget:     budget,
		Total:      total,
		Remaining:  remaining,
		Overspent:  Overspent(remaining),
		ByCategory: byCat,
		Shares:     Percentages(byCat, total),
		Sweeps:     ChartSweeps(byCat, total),
		Bars:       BarFractions(byCat, total),
	}
}

// Percent returns the share for cat, or 0 when it has none.
func (b Breakdown) Percent(cat core.Category) float64 {
	for _, s := range b.Shares {
		if s.Category == cat {
			return s.Percent
		}
	}
	return 0
}
