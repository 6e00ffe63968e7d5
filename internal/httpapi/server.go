// Package httpapi exposes the resolver and analysis engines over
// JSON/HTTP plus a websocket ticker feed.
package httpapi

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/config"
	"github.com/macrowatch/macrowatch/internal/metrics"
	"github.com/macrowatch/macrowatch/internal/resolver"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Server is the HTTP front of the pipeline.
type Server struct {
	router *mux.Router
	server *http.Server
	h      *Handlers
	cfg    config.HTTPConfig
}

// NewServer wires routes and middleware around the resolver. overrides
// may be nil; the override endpoints then answer 503.
func NewServer(cfg config.HTTPConfig, res *resolver.Resolver, overrides OverrideStore) *Server {
	s := &Server{
		router: mux.NewRouter(),
		h:      NewHandlers(res, overrides),
		cfg:    cfg,
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.corsMiddleware)

	s.router.Handle("/metrics", metrics.Handler()).Methods("GET")
	s.router.HandleFunc("/health", s.h.Health).Methods("GET")

	// The ticker upgrades the connection; it must not sit behind the
	// request timeout.
	s.router.HandleFunc("/ws/ticker", s.h.Ticker(s.cfg.TickerInterval.Std()))

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.timeoutMiddleware)
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/entity/{key}", s.h.Entity).Methods("GET")
	api.HandleFunc("/analysis/{key}", s.h.Analysis).Methods("GET")
	api.HandleFunc("/scorecard", s.h.Scorecard).Methods("GET")
	api.HandleFunc("/seasonality/{key}", s.h.Seasonality).Methods("GET")
	api.HandleFunc("/search", s.h.Search).Methods("GET")
	api.HandleFunc("/market", s.h.Market).Methods("GET")

	api.HandleFunc("/override/{key}", s.h.SetOverride).Methods("PUT")
	api.HandleFunc("/override/{key}", s.h.DeleteOverride).Methods("DELETE")
	api.HandleFunc("/overrides", s.h.ListOverrides).Methods("GET")

	s.router.NotFoundHandler = jsonContentTypeMiddleware(http.HandlerFunc(s.h.NotFound))
}

// Router exposes the handler tree, for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start blocks serving requests until Shutdown or a listen error.
func (s *Server) Start() error {
	log.Info().Str("addr", s.cfg.Listen).Msg("http server starting")
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveRequest(route, strconv.Itoa(wrapper.statusCode), elapsed)

		log.Debug().
			Str("request_id", requestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("elapsed", elapsed).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout.Std())
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade through the logging wrapper.
func (rw *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}
