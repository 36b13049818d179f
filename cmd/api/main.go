package main

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

	"github.com/flulance/flulance-backend-go/internal/config"
	appHTTP "github.com/flulance/flulance-backend-go/internal/handler/http"
	"github.com/flulance/flulance-backend-go/internal/pkg/cron"
	"github.com/flulance/flulance-backend-go/internal/pkg/email"
	"github.com/flulance/flulance-backend-go/internal/pkg/jwt"
	"github.com/flulance/flulance-backend-go/internal/pkg/ratelimit"
	"github.com/flulance/flulance-backend-go/internal/pkg/storage"
	applicationService "github.com/flulance/flulance-backend-go/internal/service/application"
	briefService "github.com/flulance/flulance-backend-go/internal/service/brief"
	commissionService "github.com/flulance/flulance-backend-go/internal/service/commission"
	dashboardService "github.com/flulance/flulance-backend-go/internal/service/dashboard"
	jobService "github.com/flulance/flulance-backend-go/internal/service/job"
	matchService "github.com/flulance/flulance-backend-go/internal/service/match"
	notificationService "github.com/flulance/flulance-backend-go/internal/service/notification"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	var fileStorage *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			slog.Error("Failed to initialize local storage", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	var limiter ratelimit.Limiter = ratelimit.NewLocalLimiter()
	if cfg.Redis.URL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to local rate limiting", "error", err)
		} else {
			defer client.Close()
			limiter = ratelimit.NewRedisLimiter(client)
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notifSvc := notificationService.NewNotificationService(repos.notification, repos.directory, emailService, notificationService.Config{
		QueueSize:   cfg.Notification.QueueSize,
		WorkerCount: cfg.Notification.WorkerCount,
		FrontendURL: cfg.App.FrontendURL,
	})

	jobSvc := jobService.NewJobService(repos.jobs, repos.applications, notifSvc)
	applicationSvc := applicationService.NewApplicationService(
		repos.tx,
		repos.jobs,
		repos.applications,
		repos.matches,
		repos.directory,
		notifSvc,
	)
	briefSvc := briefService.NewBriefService(repos.tx, repos.briefs, repos.proposals, repos.matches, notifSvc)
	matchSvc := matchService.NewMatchService(
		repos.tx,
		repos.matches,
		repos.messages,
		repos.jobs,
		fileStorage,
		notifSvc,
	)
	commissionSvc := commissionService.NewCommissionService(repos.commission)
	dashboardSvc := dashboardService.NewDashboardService(repos.dashboard)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("job-expiry-sweep", cfg.Jobs.ExpirySweepInterval, func(ctx context.Context) error {
		n, err := jobSvc.SweepExpired(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("Expired stale jobs", "count", n)
		}
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterOptions{
		Env:             cfg.App.Env,
		Version:         version,
		CORSOrigins:     cfg.App.CORSOrigins,
		LogLevel:        cfg.SlogLevel(),
		Limiter:         limiter,
		RateLimit:       cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.Window,
		UploadsDir:      fileStorage.BasePath(),
	}, appHTTP.Handlers{
		Job:          appHTTP.NewJobHandler(jobSvc),
		Application:  appHTTP.NewApplicationHandler(applicationSvc),
		Brief:        appHTTP.NewBriefHandler(briefSvc),
		Match:        appHTTP.NewMatchHandler(matchSvc),
		Commission:   appHTTP.NewCommissionHandler(commissionSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "store", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	scheduler.Stop()
	notifSvc.Stop()
	slog.Info("Server stopped")
}
