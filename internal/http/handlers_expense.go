package http

import (
	"errors"
	"net/http"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/screen"
)

// handleSubmitExpense adds an expense, or saves the one being edited.
// Input that does not parse is ignored: the screen keeps the typed values
// and no event fires.
func (s *Server) handleSubmitExpense(w http.ResponseWriter, r *http.Request) {
	form, err := ParseExpenseForm(r)
	if err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	e, action, err := s.screen.Submit(r.Context(), form.Amount, form.Note, form.Category)
	switch {
	case err == nil:
	case isInputError(err):
		s.respond(w, r, NewHTMXResponse())
		return
	default:
		s.fail(w, r, "submit", err)
		return
	}

	b := NewHTMXResponse()
	if action == screen.ActionUpdated {
		b.TriggerExpenseUpdated(e.ID)
	} else {
		b.TriggerExpenseCreated(e.ID)
	}
	s.respond(w, r, b.TriggerFormReset())
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		BadRequestError("Invalid expense id").Write(w)
		return
	}
	if _, err := s.screen.BeginEdit(r.Context(), id); err != nil {
		s.fail(w, r, "edit", err)
		return
	}
	applog.FromContext(r.Context()).DebugContext(r.Context(), "Edit started", applog.FieldExpenseID, id)
	s.respond(w, r, NewHTMXResponse().TriggerViewChanged(screen.ViewList))
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.screen.CancelEdit()
	s.respond(w, r, NewHTMXResponse().TriggerFormReset())
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		BadRequestError("Invalid expense id").Write(w)
		return
	}
	if err := s.screen.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete", err)
		return
	}
	s.respond(w, r, NewHTMXResponse().TriggerExpenseDeleted(id))
}

func isInputError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrUnknownCategory)
}
