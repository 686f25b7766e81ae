package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/api"
	"github.com/LeoR1u/ProyectoLegos/internal/api/handlers"
	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/cache"
	"github.com/LeoR1u/ProyectoLegos/internal/health"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	service "github.com/LeoR1u/ProyectoLegos/internal/services"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/LeoR1u/ProyectoLegos/internal/ticket"
	"github.com/LeoR1u/ProyectoLegos/internal/tracing"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	SkipMigrations bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Long: `Run the storefront HTTP server.

Pending migrations are applied first unless --skip-migrations is set. The
server stops gracefully on SIGINT or SIGTERM.

Example:
  lego-store serve --config config/local.yaml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipMigrations, "skip-migrations", false, "do not apply pending migrations on start")

	return cmd
}

func runServer(ctx context.Context, opts *ServeOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		return err
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("Tracer shutdown failed", slog.Any("error", err))
		}
	}()

	// Database
	db, err := repository.Open(&cfg.Database)
	if err != nil {
		return err
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	if !opts.SkipMigrations {
		if err := repository.MigrateUp(db); err != nil {
			return err
		}

		slog.Info("Database schema up to date")
	}

	// Redis backs sessions, the catalog cache and the login limiter.
	redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		return err
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer redisCache.Close()

	productService := service.NewProductService(repository.NewProductRepo(db), redisCache, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(productService)
	userService := service.NewUserService(
		repository.NewUserRepo(db),
		repository.NewRateLimitRepo(redisClient, cfg.RateConfig, nil),
	)
	pendingCartService := service.NewPendingCartService(repository.NewPendingCartRepo(db))
	orderService := service.NewOrderService(repository.NewOrderRepository(db))

	manager := session.NewManager(
		session.NewStore(redisCache, cfg.Session.TTL),
		[]byte(cfg.Security.SessionKey),
		cfg.Session,
		cfg.Security.SecureCookie,
	)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Handlers: api.Handlers{
			Product: handlers.NewProductHandler(productService),
			Cart:    handlers.NewCartHandler(cartService),
			User:    handlers.NewUserHandler(userService, pendingCartService),
			Order:   handlers.NewOrderHandler(orderService, ticket.NewPDFRenderer(), cfg.Store.Name),
		},
		Sessions:       middleware.NewSessionMiddleware(manager, session.NewLocker()),
		Health:         healthHandler.Handler(),
		RequestTimeout: cfg.RequestTimeout,
		ServiceName:    cfg.Otel.ServiceName,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		slog.Info("Server is starting...", slog.String("address", cfg.Addr), slog.String("env", cfg.Env))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("failed to start server: %w", err)
		}

		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		slog.Warn("Shutdown signal received. Preparing to stop the server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("Server shut down gracefully. All connections closed.")

	return nil
}
