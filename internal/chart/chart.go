// Package chart renders the category breakdown as standalone SVG.
package chart

import (
	"fmt"
	"html"
	"math"
	"strings"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/core"
)

// Color is one palette entry.
type Color struct {
	Name string
	Hex  string
}

// Palette is assigned to categories by their position in the breakdown.
var Palette = []Color{
	{Name: "red", Hex: "#e53935"},
	{Name: "blue", Hex: "#1e88e5"},
	{Name: "green", Hex: "#43a047"},
	{Name: "magenta", Hex: "#d81b60"},
	{Name: "cyan", Hex: "#00acc1"},
	{Name: "yellow", Hex: "#fdd835"},
}

// ColorAt cycles through the palette.
func ColorAt(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// LegendEntry describes one category next to the chart.
type LegendEntry struct {
	Category core.Category
	Color    Color
	Amount   core.Money
	Percent  float64
}

// Label is the "Food $12.00 (40.0%)" text used in legends and terminal output.
func (e LegendEntry) Label() string {
	return fmt.Sprintf("%s %s (%.1f%%)", e.Category, e.Amount, e.Percent)
}

// Legend returns one entry per category in breakdown order.
func Legend(b aggregate.Breakdown) []LegendEntry {
	out := make([]LegendEntry, 0, len(b.ByCategory))
	for i, ca := range b.ByCategory {
		out = append(out, LegendEntry{
			Category: ca.Category,
			Color:    ColorAt(i),
			Amount:   ca.Amount,
			Percent:  b.Percent(ca.Category),
		})
	}
	return out
}

// sweepEpsilon absorbs rounding in the decimal ratios.
const sweepEpsilon = 1e-6

// Pie renders a size x size SVG pie. Wedges start at twelve o'clock and run
// clockwise. A zero total renders an empty chart.
func Pie(b aggregate.Breakdown, size int) string {
	if size <= 0 {
		size = 200
	}
	c := float64(size) / 2
	r := c - 2

	var sb strings.Builder
	openSVG(&sb, size, size, "Spending by category")
	for i, s := range b.Sweeps {
		if s.Degrees <= sweepEpsilon {
			continue
		}
		col := ColorAt(i)
		if s.Degrees >= aggregate.FullCircle-sweepEpsilon {
			fmt.Fprintf(&sb, `<circle class="wedge wedge-%s" cx="%s" cy="%s" r="%s" fill="%s"><title>%s</title></circle>`,
				s.Category.Slug(), num(c), num(c), num(r), col.Hex, html.EscapeString(s.Category.String()))
			continue
		}
		x0, y0 := point(c, r, s.Start)
		x1, y1 := point(c, r, s.Start+s.Degrees)
		large := 0
		if s.Degrees > 180 {
			large = 1
		}
		fmt.Fprintf(&sb, `<path class="wedge wedge-%s" d="M%s,%s L%s,%s A%s,%s 0 %d 1 %s,%s Z" fill="%s"><title>%s</title></path>`,
			s.Category.Slug(), num(c), num(c), num(x0), num(y0), num(r), num(r), large, num(x1), num(y1),
			col.Hex, html.EscapeString(s.Category.String()))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

const (
	barHeight = 24
	barGap    = 8
	labelW    = 90
)

// Bars renders one horizontal bar per category, scaled to width. A zero
// total renders the rows with empty bars.
func Bars(b aggregate.Breakdown, width int) string {
	if width <= labelW+40 {
		width = 320
	}
	track := float64(width - labelW - 60)
	height := len(b.Bars)*(barHeight+barGap) + barGap

	var sb strings.Builder
	openSVG(&sb, width, height, "Spending by category")
	for i, bar := range b.Bars {
		y := barGap + i*(barHeight+barGap)
		col := ColorAt(i)
		name := html.EscapeString(bar.Category.String())
		fmt.Fprintf(&sb, `<text x="0" y="%d" dominant-baseline="middle">%s</text>`, y+barHeight/2, name)
		fmt.Fprintf(&sb, `<rect class="bar bar-%s" x="%d" y="%d" width="%s" height="%d" fill="%s"><title>%s</title></rect>`,
			bar.Category.Slug(), labelW, y, num(track*clamp(bar.Fraction)), barHeight, col.Hex, name)
		fmt.Fprintf(&sb, `<text x="%s" y="%d" dominant-baseline="middle">%.1f%%</text>`,
			num(float64(labelW)+track*clamp(bar.Fraction)+6), y+barHeight/2, bar.Fraction*100)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func openSVG(sb *strings.Builder, w, h int, title string) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img"><title>%s</title>`,
		w, h, w, h, html.EscapeString(title))
}

// point returns the position on the circle deg degrees clockwise from the top.
func point(c, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return c + r*math.Sin(rad), c - r*math.Cos(rad)
}

func clamp(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func num(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
