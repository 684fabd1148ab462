package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/queue-backend/internal/adapter/provider/template"
	"github.com/heartmarshall/queue-backend/internal/auth"
	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/service/document"
	"github.com/heartmarshall/queue-backend/internal/transport/middleware"
	"github.com/heartmarshall/queue-backend/internal/transport/rest"
	"github.com/heartmarshall/queue-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, opens the
// configured storage, wires the document service to the HTTP and WebSocket
// transports, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	hub := ws.NewHub(logger, cfg.CORS)
	svc := document.NewService(
		logger,
		st.documents,
		st.audit,
		st.tx,
		template.NewProvider(cfg.Templates, logger),
		hub,
		cfg.Editor,
		cfg.Templates,
	)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(logger, cfg, svc, hub, st.pinger, jwt, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by Shutdown.
		hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped", slog.Int("open_sessions", svc.OpenSessions()))
	return nil
}

// newRouter builds the HTTP handler tree. Probes are public; everything
// under /api passes through authentication, client tagging and rate
// limiting (when configured).
func newRouter(
	logger *slog.Logger,
	cfg *config.Config,
	svc *document.Service,
	hub *ws.Hub,
	pinger storagePinger,
	jwt *auth.JWTManager,
	limiter *middleware.RateLimiter,
) http.Handler {
	api := http.NewServeMux()
	rest.NewDocumentHandler(svc, logger, cfg.Templates.MaxBytes).Register(api)
	hub.Register(api, svc)

	var limit middleware.Middleware
	if limiter != nil {
		limit = limiter.Limit(cfg.RateLimit.RequestsPerMinute)
	}
	apiChain := middleware.Chain(
		middleware.Auth(jwt),
		middleware.ClientID,
		limit,
	)

	root := http.NewServeMux()
	rest.NewHealthHandler(pinger, Version, map[string]rest.Gauge{
		"sessions":    svc.OpenSessions,
		"connections": hub.Connections,
	}).Register(root)
	root.Handle("/api/", apiChain(api))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(root)
}
