package console

import (
	"testing"

	"expensetracker/internal/core"
)

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		input  string
		want   core.Category
		wantOK bool
	}{
		{"Food", core.Food, true},
		{"food", core.Food, true},
		{"  BILLS ", core.Bills, true},
		{"fod", core.Food, true},
		{"trasnport", core.Transport, true},
		{"shoping", core.Shopping, true},
		{"genral", core.General, true},
		{"othr", core.Other, true},
		{"pets", "", false},
		{"", "", false},
		{"xyzzyplugh", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchCategory(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MatchCategory(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
