package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/adapters/httpclient"
	"github.com/SscSPs/bookhub_loan_service/internal/adapters/notify"
	"github.com/SscSPs/bookhub_loan_service/internal/core/services"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/handlers"
	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
	"github.com/SscSPs/bookhub_loan_service/internal/platform/config"
	"github.com/SscSPs/bookhub_loan_service/internal/platform/scheduler"
	"github.com/SscSPs/bookhub_loan_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookhub_loan_service/internal/utils"
	"github.com/SscSPs/bookhub_loan_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout   = 15 * time.Second
	reminderRunBudget = 10 * time.Minute
)

// @title BookHub Loan Service API
// @version 1.0
// @description Borrowing, returns, overdue tracking and loan statistics for BookHub.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	auth := httpclient.InternalAuth{
		Secret:   cfg.InternalJWTSecret,
		Issuer:   cfg.InternalJWTIssuer,
		Audience: cfg.InternalJWTAudience,
		TTL:      cfg.InternalJWTTTL,
	}
	remote := httpclient.NewInternalHTTPClient(auth, cfg.RemoteTimeout)
	catalog := httpclient.NewCatalogClient(cfg.CatalogServiceURL, remote)
	users := httpclient.NewUserClient(cfg.UserServiceURL, remote)

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos, catalog, users, newNotifier(cfg))

	jobs := scheduler.New(logger, reminderRunBudget)
	if _, err := jobs.Register("overdue_reminders", cfg.ReminderCron, func(ctx context.Context) error {
		_, err := container.Reminder.SendOverdueReminders(ctx)
		return err
	}); err != nil {
		logger.Error("Failed to schedule overdue reminders", slog.String("error", err.Error()))
		os.Exit(1)
	}
	jobs.Start()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	r.Use(cors.New(corsConfig))

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	jobs.Stop(shutdownCtx)
}

func newNotifier(cfg *config.Config) portssvc.OverdueNotifier {
	if cfg.SMTPHost == "" {
		return notify.LogNotifier{}
	}
	return notify.NewEmailNotifier(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
	})
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
