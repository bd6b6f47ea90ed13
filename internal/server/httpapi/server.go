// Package httpapi is the HTTP front door of the identity server: anonymous
// bootstrap, quota status and the capability gate other handlers mount.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/atomic"
)

type HTTPServerConfig struct {
	ListenAddr     string
	AllowedOrigins []string

	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

type Server struct {
	cfg     *HTTPServerConfig
	isReady atomic.Bool
	log     logging.Logger
	slog    *slog.Logger

	issuer   *identity.Issuer
	resolver *identity.Resolver
	ledger   *quota.Ledger

	srv *http.Server
}

func New(cfg *HTTPServerConfig, l *logging.SlogLogger, is *identity.Issuer, rs *identity.Resolver, ld *quota.Ledger) *Server {
	if cfg.GracefulShutdownDuration <= 0 {
		cfg.GracefulShutdownDuration = 5 * time.Second
	}
	srv := &Server{
		cfg:      cfg,
		log:      l.With("module", "http_server"),
		slog:     l.Slog().With("module", "http_server"),
		issuer:   is,
		resolver: rs,
		ledger:   ld,
	}
	srv.isReady.Store(true)

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv
}

// Handler returns the full router wrapped in CORS handling.
func (srv *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: srv.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Anonymous-Token"},
		ExposedHeaders: []string{headerLimit, headerRemaining, headerReset, "Retry-After"},
	}).Handler(srv.getRouter())
}

func (srv *Server) getRouter() http.Handler {
	mux := chi.NewRouter()
	mux.Use(srv.httpLogger)

	mux.Post("/v1/identity/anonymous", srv.handleIssueAnonymous)

	mux.Group(func(r chi.Router) {
		r.Use(srv.Authenticate)
		r.Get("/v1/quota", srv.handleQuotaStatus)
		r.With(srv.RequireQuota).Post("/v1/quota/consume", srv.handleConsume)
	})

	// Health and diagnostic endpoints
	mux.Get("/livez", srv.handleLivenessCheck)
	mux.Get("/readyz", srv.handleReadinessCheck)
	mux.Get("/drain", srv.handleDrain)
	mux.Get("/undrain", srv.handleUndrain)

	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.slog, next)
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (srv *Server) handleDrain(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Swap(false) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already draining"})
		return
	}
	srv.log.Info(r.Context(), "Server marked as not ready")
	writeJSON(w, http.StatusOK, map[string]string{"status": "draining"})
}

func (srv *Server) handleUndrain(w http.ResponseWriter, r *http.Request) {
	if srv.isReady.Swap(true) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already ready"})
		return
	}
	srv.log.Info(r.Context(), "Server marked as ready")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (srv *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		srv.log.Info(ctx, "Starting HTTP server", "listenAddress", srv.cfg.ListenAddr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.isReady.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(shutdownCtx); err != nil {
		srv.log.Error(ctx, "Graceful HTTP server shutdown failed", "error", err)
		return err
	}
	srv.log.Info(ctx, "HTTP server gracefully stopped")
	return nil
}

func credentialsFromRequest(r *http.Request) identity.Credentials {
	return identity.Credentials{
		Bearer:    identity.ParseBearer(r.Header.Get(common.AuthorizationHeaderName)),
		Anonymous: r.Header.Get(common.AnonymousTokenHeaderName),
	}
}
