// Package console is the terminal front end for the expense screen: a line
// command interpreter and a pterm renderer.
package console

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/chart"
	"expensetracker/internal/core"
	"expensetracker/internal/screen"
)

const barCells = 30

// paletteStyles mirrors chart.Palette for the terminal.
var paletteStyles = map[string]pterm.Color{
	"red":     pterm.FgRed,
	"blue":    pterm.FgBlue,
	"green":   pterm.FgGreen,
	"magenta": pterm.FgMagenta,
	"cyan":    pterm.FgCyan,
	"yellow":  pterm.FgYellow,
}

// Renderer draws screen states as text.
type Renderer struct {
	out      io.Writer
	negative func(a ...any) string
	positive func(a ...any) string
}

// NewRenderer writes to out. With useColor false all output is plain text.
func NewRenderer(out io.Writer, useColor bool) *Renderer {
	neg := color.New(color.FgRed, color.Bold)
	pos := color.New(color.FgGreen, color.Bold)
	if useColor {
		neg.EnableColor()
		pos.EnableColor()
		pterm.EnableStyling()
	} else {
		neg.DisableColor()
		pos.DisableColor()
		pterm.DisableStyling()
	}
	return &Renderer{
		out:      out,
		negative: neg.SprintFunc(),
		positive: pos.SprintFunc(),
	}
}

func (r *Renderer) headerStyle(t screen.Theme) *pterm.Style {
	if t == screen.ThemeDark {
		return pterm.NewStyle(pterm.FgLightMagenta)
	}
	return pterm.NewStyle(pterm.FgLightCyan)
}

// Render prints the summary and the active view.
func (r *Renderer) Render(st screen.State) {
	r.Summary(st)
	if st.View == screen.ViewChart {
		r.Chart(st)
		return
	}
	r.List(st)
}

// Summary prints budget, total and remaining in a box. Remaining is red when
// the budget is overspent and green otherwise.
func (r *Renderer) Summary(st screen.State) {
	b := st.Breakdown
	remaining := r.positive(b.Remaining.String())
	if b.Overspent {
		remaining = r.negative(b.Remaining.String())
	}
	body := fmt.Sprintf("Budget:    %s\nTotal:     %s\nRemaining: %s", b.Budget, b.Total, remaining)
	box := pterm.DefaultBox.
		WithTitle("Expense Tracker").
		WithBoxStyle(r.headerStyle(st.Theme)).
		Sprint(body)
	fmt.Fprintln(r.out, box)
}

// List prints the expenses as a table. The row being edited is starred.
func (r *Renderer) List(st screen.State) {
	if len(st.Expenses) == 0 {
		fmt.Fprintln(r.out, "No expenses yet.")
		return
	}
	data := pterm.TableData{{"", "ID", "Amount", "Category", "Note"}}
	for _, e := range st.Expenses {
		mark := ""
		if e.ID == st.Form.EditingID {
			mark = "*"
		}
		data = append(data, []string{mark, strconv.FormatInt(e.ID, 10), e.Amount.String(), e.Category.String(), e.Note})
	}
	r.table(st.Theme, data)
}

// Chart prints the breakdown as a legend table (pie) or horizontal bars.
func (r *Renderer) Chart(st screen.State) {
	b := st.Breakdown
	if !b.HasData() {
		fmt.Fprintln(r.out, "No data to chart yet.")
		return
	}
	legend := chart.Legend(b)
	if st.Chart == screen.ChartBar {
		r.bars(st.Theme, legend, b.Bars)
		return
	}
	data := pterm.TableData{{"Category", "Amount", "Share", "Degrees"}}
	for i, e := range legend {
		data = append(data, []string{
			r.swatch(e.Color, e.Category.String()),
			e.Amount.String(),
			fmt.Sprintf("%.1f%%", e.Percent),
			fmt.Sprintf("%.1f", b.Sweeps[i].Degrees),
		})
	}
	r.table(st.Theme, data)
}

func (r *Renderer) bars(theme screen.Theme, legend []chart.LegendEntry, bars []aggregate.Bar) {
	data := pterm.TableData{{"Category", "", "Share"}}
	for i, e := range legend {
		n := int(math.Round(bars[i].Fraction * barCells))
		data = append(data, []string{
			e.Category.String(),
			r.swatch(e.Color, strings.Repeat("█", n)),
			fmt.Sprintf("%.1f%%", e.Percent),
		})
	}
	r.table(theme, data)
}

func (r *Renderer) swatch(c chart.Color, text string) string {
	if style, ok := paletteStyles[c.Name]; ok {
		return style.Sprint(text)
	}
	return text
}

func (r *Renderer) table(theme screen.Theme, data pterm.TableData) {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(r.headerStyle(theme)).
		WithData(data).
		Srender()
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintln(r.out, out)
}

// Form prints the edit session, if any.
func (r *Renderer) Form(f screen.Form) {
	if !f.Editing() {
		return
	}
	note := f.Note
	if note == "" {
		note = "-"
	}
	fmt.Fprintf(r.out, "Editing #%d: %s %s %s (save <amount> <category> [note] or cancel)\n",
		f.EditingID, f.Amount, f.Category, note)
}

// Categories prints the category list.
func (r *Renderer) Categories(cats []core.Category) {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	fmt.Fprintln(r.out, "Categories: "+strings.Join(names, ", "))
}

func (r *Renderer) Info(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Info.Sprintfln(format, a...))
}

func (r *Renderer) Warn(format string, a ...any) {
	fmt.Fprint(r.out, pterm.Warning.Sprintfln(format, a...))
}
