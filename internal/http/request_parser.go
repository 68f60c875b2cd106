// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var errInvalidID = errors.New("invalid id")

// ExpenseForm is the raw add/edit form as posted. Amount and category are
// validated by the screen, not here.
type ExpenseForm struct {
	Amount   string
	Note     string
	Category string
}

// ParseExpenseForm reads the add/edit form fields.
func ParseExpenseForm(r *http.Request) (ExpenseForm, error) {
	if err := r.ParseForm(); err != nil {
		return ExpenseForm{}, err
	}
	return ExpenseForm{
		Amount:   strings.TrimSpace(r.PostForm.Get("amount")),
		Note:     sanitizeInput(r.PostForm.Get("note")),
		Category: sanitizeInput(r.PostForm.Get("category")),
	}, nil
}

// PathID parses the {id} path segment as a positive integer.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
