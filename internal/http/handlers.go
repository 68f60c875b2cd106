package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"expensetracker/internal/chart"
	"expensetracker/internal/ledger"
	applog "expensetracker/internal/log"
	"expensetracker/internal/screen"
)

const (
	pieSize  = 220
	barWidth = 360
)

// pageData is what the index and screen templates render.
type pageData struct {
	screen.State
	Legend   []chart.LegendEntry
	ChartSVG template.HTML
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady checks the store can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"templates": "ok", "store": "ok"}
	status, code := "ready", http.StatusOK

	if _, err := s.screen.Snapshot(r.Context()); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", applog.FieldError, err)
		checks["store"] = "failed: " + err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index.html")
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "screen")
}

// buildPage builds the view model from a screen snapshot.
func (s *Server) buildPage(r *http.Request) (pageData, error) {
	st, err := s.screen.Snapshot(r.Context())
	if err != nil {
		return pageData{}, err
	}
	svg, err := s.renderChart(st)
	if err != nil {
		return pageData{}, err
	}
	return pageData{
		State:    st,
		Legend:   chart.Legend(st.Breakdown),
		ChartSVG: template.HTML(svg),
	}, nil
}

func (s *Server) renderHTML(r *http.Request, name string) ([]byte, error) {
	data, err := s.buildPage(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string) {
	body, err := s.renderHTML(r, name)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template render failed",
			applog.FieldOperation, applog.OpRender, applog.FieldError, err, "template", name)
		InternalServerError("Something went wrong rendering the screen").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(string(body)).Write(w)
}

// respond finishes a screen action: htmx requests get the refreshed screen
// partial plus trigger events, plain form posts are redirected home.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	body, err := s.renderHTML(r, "screen")
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Screen partial render failed",
			applog.FieldOperation, applog.OpRender, applog.FieldError, err)
		InternalServerError("Something went wrong rendering the screen").Write(w)
		return
	}
	b.BodyHTML(string(body)).Write(w)
}

// fail maps action errors to responses. Not found is a 404, anything else
// unexpected is a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ledger.ErrNotFound) {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Expense not found",
			applog.FieldOperation, op, applog.FieldPath, r.URL.Path)
		NotFoundError("That expense no longer exists.").Write(w)
		return
	}
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Screen action failed",
		applog.FieldOperation, op, applog.FieldError, err)
	InternalServerError("Something went wrong, please retry.").Write(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
