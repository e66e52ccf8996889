// Package http exposes the meal tracker over a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/cache"
	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/dinner"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

// Notifier publishes a menu-saved event after a successful save. The
// AMQP client satisfies it; a nil notifier disables publishing.
type Notifier interface {
	PublishMenuSaved(ctx context.Context, menuID string) error
}

type Server struct {
	http.Server

	gateway   menus.Gateway
	suggester dinner.Suggester
	notifier  Notifier

	rateLimiter *rateLimiter

	// bundleCache keeps recently read bundles so stats and summary
	// requests for the same menu skip storage. Invalidated on save.
	bundleCache *cache.TTL[core.MenuBundle]
	cleanup     *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
// suggester and notifier may be nil; the matching features degrade.
func NewServer(addr string, gw menus.Gateway, suggester dinner.Suggester, notifier Notifier) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		gateway:     gw,
		suggester:   suggester,
		notifier:    notifier,
		rateLimiter: newRateLimiter(),
		bundleCache: cache.NewTTL[core.MenuBundle](5 * time.Minute),
		cleanup:     cache.NewManager(),
	}

	s.cleanup.Register(s.bundleCache)
	s.cleanup.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/menu", s.withSecurityHeaders(s.handleSaveMenu))
	mux.HandleFunc("/api/menu/", s.withSecurityHeaders(s.handleMenuSubtree))
	mux.HandleFunc("/api/dinner-suggestions", s.withSecurityHeaders(s.handleDinnerSuggestions))

	return s
}

// Shutdown stops the cleanup goroutines once and drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.cleanup != nil {
			s.cleanup.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
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

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Writes are rate limited; reads are not.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// loadBundle reads through the cache.
func (s *Server) loadBundle(ctx context.Context, id string) (core.MenuBundle, error) {
	if b, ok := s.bundleCache.Get(id); ok {
		slog.DebugContext(ctx, "Bundle cache hit", "menu_id", id)
		return b, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	b, err := s.gateway.Load(cctx, id)
	if err != nil {
		return core.MenuBundle{}, err
	}

	s.bundleCache.Set(id, b)
	return b, nil
}
