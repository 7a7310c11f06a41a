// Package http is the JSON API of the committee dashboard.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"samiti/internal/auth"
	"samiti/internal/cache"
	"samiti/internal/log"
	"samiti/internal/services"
)

type Server struct {
	http.Server
	service     *services.CommitteeService
	gate        *auth.Gate
	logger      *log.Logger
	rateLimiter *rateLimiter

	// Per-year dashboard views. Purged on every committed mutation.
	overviewCache    *cache.LRU[dashboardView]
	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, service *services.CommitteeService, gate *auth.Gate, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service:          service,
		gate:             gate,
		logger:           logger,
		rateLimiter:      newRateLimiter(),
		overviewCache:    newOverviewCache(),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("/api/logout", s.withSecurityHeaders(s.requireAuth(s.handleLogout)))

	mux.HandleFunc("/api/state", s.withSecurityHeaders(s.requireAuth(s.handleState)))
	mux.HandleFunc("/api/dashboard", s.withSecurityHeaders(s.requireAuth(s.handleDashboard)))

	mux.HandleFunc("/api/contributions", s.withSecurityHeaders(s.requireAuth(s.handleContributions)))
	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.requireAuth(s.handleExpenses)))
	mux.HandleFunc("/api/budgets", s.withSecurityHeaders(s.requireAuth(s.handleBudgets)))

	mux.HandleFunc("/api/members", s.withSecurityHeaders(s.requireAuth(s.handleMembers)))
	mux.HandleFunc("/api/committee", s.withSecurityHeaders(s.requireAuth(s.handleCommittee)))

	mux.HandleFunc("/api/settings", s.withSecurityHeaders(s.requireAuth(s.handleSettings)))
	mux.HandleFunc("/api/settings/rules", s.withSecurityHeaders(s.requireAuth(s.handleRules)))
	mux.HandleFunc("/api/years", s.withSecurityHeaders(s.requireAuth(s.handleYears)))
	mux.HandleFunc("/api/session", s.withSecurityHeaders(s.requireAuth(s.handleSession)))

	return s
}

func newOverviewCache() *cache.LRU[dashboardView] {
	// One entry per session year, small TTL as a safety net; explicit purge
	// on mutation is the real invalidation.
	return cache.NewLRU[dashboardView](50, 5*time.Minute)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.overviewCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging. Login is exempt from rate limiting.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if mutating(r.Method) && r.URL.Path != "/api/login" && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// requireAuth rejects requests while the admin gate is closed.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.gate.IsAuthenticated() {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r)
	}
}

type requestIDKey struct{}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	default:
		return false
	}
}

func (s *Server) invalidateViews() {
	s.overviewCache.Purge()
}

func (s *Server) yearKey(year int) string {
	return strconv.Itoa(year)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
