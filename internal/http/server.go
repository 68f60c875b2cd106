package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/cache"
	applog "expensetracker/internal/log"
	"expensetracker/internal/metrics"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/screen"
	appweb "expensetracker/web"
)

const (
	chartCacheSize = 64
	chartCacheTTL  = 10 * time.Minute
	cleanupEvery   = 5 * time.Minute
	staticMaxAge   = 3600
)

// Config holds the knobs the server needs from the application config.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	MetricsEnabled     bool
}

type Server struct {
	http.Server
	templates *template.Template
	screen    *screen.Screen
	metrics   *metrics.Metrics
	logger    *applog.Logger

	limiter    *ratelimit.Limiter
	detector   *security.Detector
	chartCache *cache.LRUCache[string]
	caches     *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(cfg Config, scr *screen.Screen, m *metrics.Metrics, logger *applog.Logger) (*Server, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		templates:  t,
		screen:     scr,
		metrics:    m,
		logger:     logger,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute, Methods: []string{http.MethodPost}}),
		detector:   security.NewDetector(logger),
		chartCache: cache.NewLRUCache[string](chartCacheSize, chartCacheTTL),
		caches:     cache.NewManager(logger),
		started:    time.Now(),
	}
	s.caches.Register(s.chartCache)
	s.caches.StartCleanup(cleanupEvery)

	mux := http.NewServeMux()

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(staticMaxAge)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	if cfg.MetricsEnabled && m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ui/screen", s.handleScreen)

	mux.HandleFunc("POST /budget", s.handleSetBudget)
	mux.HandleFunc("POST /budget/reset", s.handleResetBudget)

	mux.HandleFunc("POST /expenses", s.handleSubmitExpense)
	mux.HandleFunc("POST /expenses/{id}/edit", s.handleBeginEdit)
	mux.HandleFunc("POST /expenses/edit/cancel", s.handleCancelEdit)
	mux.HandleFunc("POST /expenses/{id}/delete", s.handleDeleteExpense)

	mux.HandleFunc("POST /ui/view/{view}", s.handleSetView)
	mux.HandleFunc("POST /ui/theme", s.handleToggleTheme)
	mux.HandleFunc("POST /ui/chart-kind", s.handleChartKind)

	mux.Handle("GET /chart.svg", security.NoStore(http.HandlerFunc(s.handleChartSVG)))
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit)(h)
	h = trace.NewMiddleware(logger, s.detector.ExtractClientIP).Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.detector.Middleware(h)
	h = applog.Middleware(logger)(h)
	h = m.Instrument(h)
	s.Handler = h

	return s, nil
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests, slow down.").
		Header("Retry-After", "60").
		Write(w)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
