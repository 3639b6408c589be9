package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"intake/internal/audit/action"
	"intake/internal/audit/changelog"
	auditmetrics "intake/internal/audit/metrics"
	authhandler "intake/internal/auth/handler"
	authmetrics "intake/internal/auth/metrics"
	"intake/internal/auth/password"
	authservice "intake/internal/auth/service"
	"intake/internal/auth/token"
	"intake/internal/platform/config"
	"intake/internal/platform/httpserver"
	"intake/internal/platform/logger"
	httpmetrics "intake/internal/platform/metrics"
	triagehandler "intake/internal/triage/handler"
	triageservice "intake/internal/triage/service"
	authmw "intake/pkg/platform/middleware/auth"
	"intake/pkg/platform/middleware/metadata"
	"intake/pkg/platform/middleware/request"
	"intake/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides INTAKE_ADDR")
	return cmd
}

func newAuthService(cfg config.Server, d *deps, log *slog.Logger) *authservice.Service {
	codec := token.New(token.Config{
		AccessSecret:      cfg.Auth.AccessSecret,
		RefreshSecret:     cfg.Auth.RefreshSecret,
		EmailSecret:       cfg.Auth.EmailSecret,
		AccessTTL:         cfg.Auth.AccessTokenTTL,
		RefreshTTL:        cfg.Auth.RefreshTokenTTL,
		ForgotPasswordTTL: cfg.Auth.ForgotPasswordTTL,
		RegisterTTL:       cfg.Auth.RegisterTTL,
	})
	return authservice.New(d.users, d.sessions, codec, password.Hasher{},
		authservice.WithLogger(log),
		authservice.WithMetrics(authmetrics.New()),
		authservice.WithNotifier(d.notifier),
		authservice.WithSetPasswordURL(cfg.Auth.SetPasswordURL),
	)
}

func newTriageService(d *deps, log *slog.Logger) *triageservice.Service {
	auditMetrics := auditmetrics.New()
	actionOpts := []action.Option{action.WithLogger(log), action.WithMetrics(auditMetrics)}
	if d.stream != nil {
		actionOpts = append(actionOpts, action.WithStream(d.stream))
	}
	actions := action.New(d.actions, actionOpts...)
	changes := changelog.New(d.changes, d.users,
		changelog.WithLogger(log),
		changelog.WithMetrics(auditMetrics),
	)
	return triageservice.New(d.patients, d.cases, changes, actions, d.users,
		triageservice.WithLogger(log),
		triageservice.WithTxRunner(d.tx),
	)
}

func newRouter(cfg config.Server, d *deps, log *slog.Logger) http.Handler {
	authSvc := newAuthService(cfg, d, log)
	triageSvc := newTriageService(d, log)
	authHandler := authhandler.New(authSvc, log, authhandler.CookieConfig{Secure: cfg.Auth.CookieSecure})
	triageHandler := triagehandler.New(triageSvc, log)
	reqMetrics := httpmetrics.New(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(reqMetrics.Instrument)

	r.Get("/health", httpserver.HealthHandler(d.healthChecks()))
	r.Handle("/metrics", promhttp.Handler())

	authHandler.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(authSvc, log))
		authHandler.RegisterProtected(r)
		triageHandler.Register(r)
	})

	return otelhttp.NewHandler(r, "intake")
}

func serve(ctx context.Context, cfg config.Server) error {
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	d, err := openDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	srv := httpserver.New(cfg.Addr, newRouter(cfg, d, log))
	return httpserver.Run(ctx, srv, log, shutdownTimeout)
}
