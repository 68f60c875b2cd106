package http

import (
	"fmt"
	"html/template"
	"strings"

	"expensetracker/internal/core"
)

var templateFuncs = template.FuncMap{
	"money": func(m core.Money) string { return m.String() },
	"pct":   func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
	"slug":  func(c core.Category) string { return c.Slug() },
}

// sanitizeInput removes control characters (except tab, newline and
// carriage return), then trims whitespace.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
