package http

import (
	"net/http"

	"expensetracker/internal/screen"
)

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}
	s.screen.SetBudget(sanitizeInput(r.PostForm.Get("budget")))
	s.respond(w, r, NewHTMXResponse().TriggerBudgetChanged())
}

func (s *Server) handleResetBudget(w http.ResponseWriter, r *http.Request) {
	s.screen.ResetBudget()
	s.respond(w, r, NewHTMXResponse().TriggerBudgetChanged())
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	v, err := screen.ParseView(r.PathValue("view"))
	if err != nil {
		NotFoundError("Unknown view").Write(w)
		return
	}
	if v == screen.ViewChart {
		s.screen.ShowChart()
	} else {
		s.screen.ShowList()
	}
	s.respond(w, r, NewHTMXResponse().TriggerViewChanged(v))
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.screen.ToggleTheme()
	s.respond(w, r, NewHTMXResponse())
}

// handleChartKind sets the chart kind from the "kind" field, or toggles it
// when the field is absent.
func (s *Server) handleChartKind(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}
	raw := sanitizeInput(r.PostForm.Get("kind"))
	if raw == "" {
		s.screen.ToggleChartKind()
		s.respond(w, r, NewHTMXResponse())
		return
	}
	k, err := screen.ParseChartKind(raw)
	if err == nil {
		err = s.screen.SetChartKind(k)
	}
	if err != nil {
		BadRequestError("Unknown chart kind").Write(w)
		return
	}
	s.respond(w, r, NewHTMXResponse())
}
