package core

import (
	"errors"
	"strings"

	"github.com/gosimple/slug"
)

const (
	General   Category = "General"
	Food      Category = "Food"
	Transport Category = "Transport"
	Bills     Category = "Bills"
	Shopping  Category = "Shopping"
	Other     Category = "Other"
)

// DefaultCategory is preselected in a fresh expense form.
const DefaultCategory = General

type (
	Category string

	Expense struct {
		ID       int64
		Amount   Money
		Note     string
		Category Category
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
)

// categories in display order.
var categories = []Category{General, Food, Transport, Bills, Shopping, Other}

// Categories returns the fixed category list in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s case-insensitively against the fixed category list.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Slug is the URL and CSS safe form of the category name.
func (c Category) Slug() string {
	return slug.Make(string(c))
}

func (c Category) String() string {
	return string(c)
}

// NewExpense builds an unsaved expense from raw form input.
func NewExpense(amountText, note, category string) (Expense, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return Expense{}, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return Expense{}, err
	}
	e := Expense{
		Amount:   amount,
		Note:     strings.TrimSpace(note),
		Category: cat,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	return nil
}
