// Package server exposes the object store over HTTP: POST / creates or
// deduplicates an object, GET /<id> serves it back with its stored media
// type.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/shortclip/shortclip/internal/auth"
	"github.com/shortclip/shortclip/internal/metadata"
	"github.com/shortclip/shortclip/internal/store"
)

const (
	// DefaultPort is used when PORT is not set
	DefaultPort = 3000

	// cacheTTL bounds how long a downloaded object stays in memory.
	// Objects are immutable so the TTL only limits memory, not staleness.
	cacheTTL = time.Hour

	// cacheCapacity is the maximum number of cached objects
	cacheCapacity = 256

	// maxCacheableSize keeps large payloads out of the hot-object cache
	maxCacheableSize = 64 * 1024
)

// Config holds the server runtime settings, resolved once at startup.
type Config struct {
	Port int

	// Host, when non-empty, is the public hostname used to build links
	// (https://<Host>/<id>). Otherwise links point at localhost.
	Host string

	// UploadRate and UploadBurst enable per-token rate limiting on POST
	// when UploadRate > 0.
	UploadRate  float64
	UploadBurst int
}

type cachedObject struct {
	data []byte
	meta metadata.Metadata
}

// Server handles the upload and download endpoints.
type Server struct {
	cfg      Config
	store    store.Store
	registry *auth.Registry
	logger   *slog.Logger

	cache *ttlcache.Cache[string, cachedObject]

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// New creates a server around a store and a token registry.
func New(cfg Config, st store.Store, registry *auth.Registry, logger *slog.Logger) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := ttlcache.New[string, cachedObject](
		ttlcache.WithTTL[string, cachedObject](cacheTTL),
		ttlcache.WithCapacity[string, cachedObject](cacheCapacity),
	)
	go cache.Start()

	return &Server{
		cfg:      cfg,
		store:    st,
		registry: registry,
		logger:   logger,
		cache:    cache,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handler builds the HTTP routing: GET is download, POST is upload,
// everything else is 404.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.PathPrefix("/").Methods(http.MethodGet).Handler(s.handle(s.handleDownload))
	r.PathPrefix("/").Methods(http.MethodPost).Handler(s.handle(s.handleUpload))
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	return s.withRequestID(r)
}

// Run serves HTTP on 127.0.0.1:<port> until the listener fails or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", httpServer.Addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close stops the background cache janitor.
func (s *Server) Close() {
	s.cache.Stop()
}

// linkFor builds the short URL returned to uploaders.
func (s *Server) linkFor(id string) string {
	if s.cfg.Host != "" {
		return fmt.Sprintf("https://%s/%s", s.cfg.Host, id)
	}
	return fmt.Sprintf("http://localhost:%d/%s", s.cfg.Port, id)
}

// limiterFor returns the rate limiter for a token, creating it on first use.
// Returns nil when rate limiting is disabled.
func (s *Server) limiterFor(token string) *rate.Limiter {
	if s.cfg.UploadRate <= 0 {
		return nil
	}

	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	l, ok := s.limiters[token]
	if !ok {
		burst := s.cfg.UploadBurst
		if burst < 1 {
			burst = 1
		}
		l = rate.NewLimiter(rate.Limit(s.cfg.UploadRate), burst)
		s.limiters[token] = l
	}
	return l
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle converts handler errors into the teapot response. The wrapper
// always produces a response, even when the handler panics.
func (s *Server) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					"request_id", requestID(r.Context()),
					"panic", rec,
				)
				teapot(w)
			}
		}()

		if err := fn(w, r); err != nil {
			s.logger.Error("handler failed",
				"request_id", requestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			teapot(w)
		}
	})
}

type ctxKeyRequestID struct{}

// withRequestID tags each request with a uuid, echoed back as X-Request-Id
// and attached to log lines.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func badRequest(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(msg))
}

func authDenied(w http.ResponseWriter) {
	w.WriteHeader(http.StatusForbidden)
}

func teapot(w http.ResponseWriter) {
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("I'm a teapot"))
}
