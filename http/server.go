package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/markdownizer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// Server is the conversion backend. It accepts skeletons from clients and
// answers with Markdown skeletons produced by its ConversionService.
type Server struct {
	service  markdownizer.ConversionService
	origins  map[string]bool
	users    *KeyLimiter
	hosts    *KeyLimiter
	metrics  *Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins restricts POST /convert to requests whose Origin header
// is one of origins. With no origins configured every caller is accepted.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		for _, o := range origins {
			if o != "" {
				s.origins[o] = true
			}
		}
	}
}

// WithRateLimit limits requests per user ID, falling back to the remote
// host for anonymous callers.
func WithRateLimit(l *KeyLimiter) ServerOption {
	return func(s *Server) {
		s.users = l
	}
}

// WithHostRateLimit limits requests per remote host regardless of the user
// ID, so rotating IDs from one address does not escape the limit.
func WithHostRateLimit(l *KeyLimiter) ServerOption {
	return func(s *Server) {
		s.hosts = l
	}
}

// WithMetrics records request metrics in m and serves g on GET /metrics.
func WithMetrics(m *Metrics, g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a Server that converts skeletons with service.
func NewServer(service markdownizer.ConversionService, opts ...ServerOption) *Server {
	s := &Server{
		service: service,
		origins: make(map[string]bool),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /convert", s.instrument("/convert", s.handleConvert))
	mux.Handle("OPTIONS /convert", s.instrument("/convert", s.handlePreflight))
	mux.Handle("GET /healthz", s.instrument("/healthz", s.handleHealth))
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server listening", "addr", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !s.allowOrigin(w, r) {
		s.metrics.observeRejectedOrigin()
		writeError(w, http.StatusForbidden, "Invalid Extension ID")
		return
	}

	if !s.allowRate(r) {
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, markdownizer.MaxSkeletonBytes)
	var req markdownizer.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.UserID = r.Header.Get(UserIDHeader)

	begin := time.Now()
	resp, err := s.service.ConvertSkeleton(r.Context(), &req)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	s.metrics.observeConvert(len(req.HTMLSkeleton), time.Since(begin))

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	if !s.allowOrigin(w, r) {
		writeError(w, http.StatusForbidden, "Invalid Extension ID")
		return
	}
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+UserIDHeader)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allowOrigin reports whether the request's origin may call the API and sets
// the CORS response header when it does.
func (s *Server) allowOrigin(w http.ResponseWriter, r *http.Request) bool {
	if len(s.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if !s.origins[origin] {
		return false
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Add("Vary", "Origin")
	return true
}

// writeAppError writes err using the HTTP status of its application code.
func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	code := markdownizer.ErrorCode(err)
	if code == markdownizer.EINTERNAL {
		s.logger.Error("conversion failed", "error", err)
	}
	writeError(w, markdownizer.HTTPStatus(code), markdownizer.ErrorMessage(err))
}

// instrument logs and counts every request served by h.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.observeRequest(route, rec.status)
		s.logger.Info("http request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	})
}

// allowRate checks the host limit before the user limit, so a request
// refused by its host does not spend a user token.
func (s *Server) allowRate(r *http.Request) bool {
	host := remoteHost(r)
	if s.hosts != nil && !s.hosts.Allow(host) {
		return false
	}
	if s.users == nil {
		return true
	}
	if id := r.Header.Get(UserIDHeader); id != "" {
		return s.users.Allow("user:" + id)
	}
	return s.users.Allow("host:" + host)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
