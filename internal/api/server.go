package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/cache"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/metrics"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/report"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/schedule"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/storage"
)

// HTTPServer serves the admin schedule API.
type HTTPServer struct {
	db       *storage.DB
	resolver *schedule.Resolver
	hours    *cache.HoursCache
	reports  *report.Builder
	apiKey   string
	limiter  *rate.Limiter
	log      zerolog.Logger
	server   *http.Server
}

// Options configures the HTTP server.
type Options struct {
	Port              int
	APIKey            string
	RequestsPerSecond float64
	Burst             int
}

// NewHTTPServer wires the API over storage, resolver and cache.
func NewHTTPServer(db *storage.DB, resolver *schedule.Resolver, hours *cache.HoursCache, opts Options, log zerolog.Logger) *HTTPServer {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 20
	}
	if opts.Burst <= 0 {
		opts.Burst = 40
	}

	s := &HTTPServer{
		db:       db,
		resolver: resolver,
		hours:    hours,
		reports:  report.NewBuilder(resolver),
		apiKey:   opts.APIKey,
		limiter:  rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/working-hours", s.protected(s.handleWorkingHours))
	mux.HandleFunc("/api/v1/slots", s.protected(s.handleSlots))
	mux.HandleFunc("/api/v1/week-range", s.protected(s.handleWeekRange))
	mux.HandleFunc("/api/v1/schedule", s.protected(s.handleSchedule))
	mux.HandleFunc("/api/v1/schedule/day-off", s.protected(s.handleDayOff))
	mux.HandleFunc("/api/v1/schedule/special-hours", s.protected(s.handleSpecialHours))
	mux.HandleFunc("/api/v1/schedule/override", s.protected(s.handleDeleteOverride))
	mux.HandleFunc("/api/v1/schedule/export", s.protected(s.handleExport))
	mux.HandleFunc("/api/v1/bookings", s.protected(s.handleCreateBooking))
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("API server listening")
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// protected applies rate limiting and API key auth to a handler.
func (s *HTTPServer) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		if s.apiKey != "" && r.Header.Get("X-API-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next(w, r)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireCenter parses and validates the center query parameter.
func (s *HTTPServer) requireCenter(w http.ResponseWriter, r *http.Request) (string, bool) {
	centerUUID := r.URL.Query().Get("center")
	if centerUUID == "" {
		writeError(w, http.StatusBadRequest, "center is required")
		return "", false
	}
	center, err := s.db.GetCenter(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("center lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return "", false
	}
	if center == nil {
		writeError(w, http.StatusNotFound, "center not found")
		return "", false
	}
	return centerUUID, true
}

// parseDateParam parses a YYYY-MM-DD query parameter, defaulting to today.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format; expected YYYY-MM-DD", name)
	}
	return date, nil
}

// resolveForDate computes the working hours of a center for a date, going
// through the cache when available.
func (s *HTTPServer) resolveForDate(ctx context.Context, centerUUID string, date time.Time) (*model.WorkingHours, error) {
	if hours, ok := s.hours.Get(ctx, centerUUID, date); ok {
		return hours, nil
	}

	regular, err := s.db.GetRegularSchedule(ctx, centerUUID)
	if err != nil {
		return nil, err
	}
	special, err := s.db.GetSpecialDates(ctx, centerUUID, date, date)
	if err != nil {
		return nil, err
	}

	resolved := s.resolver.WorkingHoursForDate(date, regular, special)
	if resolved == nil {
		metrics.IncResolution("closed")
	} else {
		metrics.IncResolution("open")
	}
	s.hours.Set(ctx, centerUUID, date, resolved)
	return resolved, nil
}
