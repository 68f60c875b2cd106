package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food", Food, true},
		{"food", Food, true},
		{" BILLS ", Bills, true},
		{"Transport", Transport, true},
		{"Groceries", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrUnknownCategory) {
			t.Fatalf("%q expected ErrUnknownCategory, got %v", tc.in, err)
		}
	}
}

func TestCategoriesOrderAndCopy(t *testing.T) {
	cats := Categories()
	want := []Category{General, Food, Transport, Bills, Shopping, Other}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories", len(cats))
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("category %d = %s, want %s", i, cats[i], want[i])
		}
	}
	cats[0] = "Mutated"
	if Categories()[0] != General {
		t.Fatalf("Categories must return a copy")
	}
}

func TestCategorySlug(t *testing.T) {
	if got := Transport.Slug(); got != "transport" {
		t.Fatalf("slug = %q", got)
	}
}

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("12.50", "  lunch ", "food")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.Amount.Cents != 1250 || e.Note != "lunch" || e.Category != Food || e.ID != 0 {
		t.Fatalf("unexpected expense: %+v", e)
	}

	if _, err := NewExpense("abc", "", "Food"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := NewExpense("1", "", "Nope"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	long := strings.Repeat("é", 500)
	if e, err := NewExpense("12.50", long, "Food"); err != nil || e.Note != long {
		t.Fatalf("long note should be kept, got %v", err)
	}
	if _, err := NewExpense("0", "", "Other"); err != nil {
		t.Fatalf("zero amount should be accepted, got %v", err)
	}
}
