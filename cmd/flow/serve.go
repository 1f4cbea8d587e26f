package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salmondarat/Flow-sub001/internal/api"
	"github.com/salmondarat/Flow-sub001/internal/database"
	_ "github.com/salmondarat/Flow-sub001/internal/docs"
	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/middleware"
	"github.com/salmondarat/Flow-sub001/internal/pricing"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP server port",
				EnvVars: []string{"PORT"},
			},
			databaseURLFlag(),
			templateFlag(),
			&cli.BoolFlag{
				Name:    "migrate",
				Usage:   "Apply database migrations before serving",
				EnvVars: []string{"FLOW_MIGRATE"},
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Usage:   "Requests per minute per IP",
				EnvVars: []string{"RATE_LIMIT"},
			},
			&cli.BoolFlag{
				Name:    "trust-proxy",
				Usage:   "Take client IPs from X-Forwarded-For / X-Real-IP",
				EnvVars: []string{"TRUST_PROXY"},
			},
			&cli.DurationFlag{
				Name:    "cache-ttl",
				Usage:   "Catalog cache TTL",
				EnvVars: []string{"CATALOG_CACHE_TTL"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg := loadedConfig(c)
	port := stringOr(c, "port", cfg.Server.Port)
	dbURL := stringOr(c, "database-url", cfg.Database.URL)
	rateLimit := cfg.Server.RateLimit
	if c.IsSet("rate-limit") {
		rateLimit = c.Int("rate-limit")
	}
	cacheTTL := cfg.Pricing.CacheTTL.Duration
	if c.IsSet("cache-ttl") {
		cacheTTL = c.Duration("cache-ttl")
	}
	trustProxy := cfg.Server.TrustProxy || c.Bool("trust-proxy")

	fallback, err := loadTemplate(stringOr(c, "template", cfg.Pricing.TemplateFile))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pool      *pgxpool.Pool
		templates *form.FallbackSource
		resolver  *pricing.Resolver
		opts      []api.Option
	)
	legacy := pricing.WithLegacyTable(pricing.TableFromConfig(fallback.PricingConfig))

	if dbURL != "" {
		pool, err = database.Connect(ctx, dbURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.Database.Migrate || c.Bool("migrate") {
			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}
		}

		formRepo, err := form.NewRepository(pool)
		if err != nil {
			return err
		}
		catalogRepo, err := pricing.NewRepository(pool)
		if err != nil {
			return err
		}

		catalog := pricing.NewCachedCatalog(catalogRepo, cacheTTL)
		templates = form.NewFallbackSource(formRepo,
			form.WithFallback(fallback),
			form.WithDefaultID(cfg.Pricing.DefaultTemplateID),
		)
		resolver = pricing.NewResolver(catalog, legacy)
		opts = append(opts, api.WithCatalog(catalogRepo), api.WithTemplateLister(formRepo))
		slog.Info("using database catalog", "cache_ttl", cacheTTL.String())
	} else {
		templates = form.NewFallbackSource(nil, form.WithFallback(fallback))
		resolver = pricing.NewResolver(nil, legacy)
		slog.Warn("no database configured, serving built-in template and legacy prices")
	}

	h, err := api.New(templates, resolver, opts...)
	if err != nil {
		return fmt.Errorf("create api handler: %w", err)
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	mux.HandleFunc("GET /healthz", healthHandler(pool))

	limiter, err := middleware.New(rateLimit,
		middleware.WithTrustProxy(trustProxy),
		middleware.WithExemptPrefixes("/swagger/", "/healthz"),
	)
	if err != nil {
		return fmt.Errorf("create rate limiter: %w", err)
	}
	defer limiter.Close()

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      limiter.Middleware(middleware.CacheControl(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			if err := pool.Ping(r.Context()); err != nil {
				slog.Error("health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// loadTemplate reads a template file, or returns the built-in template for
// an empty path.
func loadTemplate(path string) (*form.Template, error) {
	if path == "" {
		return form.Default(), nil
	}
	return form.LoadFile(path)
}

