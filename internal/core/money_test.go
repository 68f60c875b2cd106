package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"50", 5000, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseBudget(t *testing.T) {
	cases := map[string]int64{
		"100":    10000,
		"99,90":  9990,
		"":       0,
		"abc":    0,
		"-20":    0,
		" 12.5 ": 1250,
	}
	for in, want := range cases {
		if got := ParseBudget(in); got.Cents != want {
			t.Fatalf("ParseBudget(%q) = %d, want %d", in, got.Cents, want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1234, "$12.34"},
		{100000, "$1000.00"},
		{-300, "-$3.00"},
		{-1, "-$0.01"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyInput(t *testing.T) {
	if got := (Money{Cents: 1250}).Input(); got != "12.50" {
		t.Fatalf("Input() = %q, want 12.50", got)
	}
	if got := (Money{}).Input(); got != "0.00" {
		t.Fatalf("Input() = %q, want 0.00", got)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 500}
	b := Money{Cents: 800}
	if got := a.Sub(b); got.Cents != -300 || !got.IsNegative() {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Add(b); got.Cents != 1300 {
		t.Fatalf("Add = %+v", got)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative money")
	}
}
