package http

import (
	"net/http"
	"strconv"

	"expensetracker/internal/cache"
	"expensetracker/internal/chart"
	applog "expensetracker/internal/log"
	"expensetracker/internal/screen"
)

// renderChart returns the SVG for the current chart kind. Output is cached
// per store revision, so any change to the expenses invalidates it.
func (s *Server) renderChart(st screen.State) (string, error) {
	key := cache.Key(
		strconv.FormatUint(st.Revision, 10),
		strconv.FormatInt(st.Breakdown.Budget.Cents, 10),
		string(st.Chart),
		string(st.Theme),
	)
	return s.chartCache.GetOrCompute(key, func() (string, error) {
		if st.Chart == screen.ChartBar {
			return chart.Bars(st.Breakdown, barWidth), nil
		}
		return chart.Pie(st.Breakdown, pieSize), nil
	})
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	st, err := s.screen.Snapshot(r.Context())
	if err != nil {
		s.fail(w, r, "chart", err)
		return
	}
	svg, err := s.renderChart(st)
	if err != nil {
		s.fail(w, r, "chart", err)
		return
	}
	NewHTMXResponse().
		Header("Content-Type", "image/svg+xml").
		BodyString(svg).
		Write(w)
}

type breakdownCategory struct {
	Category    string  `json:"category"`
	Slug        string  `json:"slug"`
	Color       string  `json:"color"`
	AmountCents int64   `json:"amount_cents"`
	Amount      string  `json:"amount"`
	Percent     float64 `json:"percent"`
	Degrees     float64 `json:"degrees"`
	Fraction    float64 `json:"fraction"`
}

type breakdownResponse struct {
	BudgetCents    int64               `json:"budget_cents"`
	TotalCents     int64               `json:"total_cents"`
	RemainingCents int64               `json:"remaining_cents"`
	Overspent      bool                `json:"overspent"`
	HasData        bool                `json:"has_data"`
	Count          int                 `json:"count"`
	Categories     []breakdownCategory `json:"categories"`
}

// handleBreakdown exposes the aggregation as JSON.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	st, err := s.screen.Snapshot(r.Context())
	if err != nil {
		s.fail(w, r, "breakdown", err)
		return
	}
	b := st.Breakdown

	resp := breakdownResponse{
		BudgetCents:    b.Budget.Cents,
		TotalCents:     b.Total.Cents,
		RemainingCents: b.Remaining.Cents,
		Overspent:      b.Overspent,
		HasData:        b.HasData(),
		Count:          len(st.Expenses),
		Categories:     make([]breakdownCategory, 0, len(b.ByCategory)),
	}
	for i, entry := range chart.Legend(b) {
		resp.Categories = append(resp.Categories, breakdownCategory{
			Category:    entry.Category.String(),
			Slug:        entry.Category.Slug(),
			Color:       entry.Color.Name,
			AmountCents: entry.Amount.Cents,
			Amount:      entry.Amount.Input(),
			Percent:     entry.Percent,
			Degrees:     b.Sweeps[i].Degrees,
			Fraction:    b.Bars[i].Fraction,
		})
	}

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Breakdown served",
		"categories", len(resp.Categories), applog.FieldRevision, st.Revision)
	writeJSON(w, http.StatusOK, resp)
}
