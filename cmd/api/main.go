package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/attendance-dashboard/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-dashboard/internal/handler/http"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-dashboard/internal/repository/backend"
	alertService "github.com/cmlabs-hris/attendance-dashboard/internal/service/alert"
	attendanceService "github.com/cmlabs-hris/attendance-dashboard/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-dashboard/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-dashboard/internal/service/employee"
	reportService "github.com/cmlabs-hris/attendance-dashboard/internal/service/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

const appVersion = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	client, err := apiclient.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err != nil {
		slog.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	dashboardRepo := backend.NewDashboardRepository(client)
	employeeRepo := backend.NewEmployeeRepository(client)
	attendanceRepo := backend.NewAttendanceRepository(client)
	alertRepo := backend.NewAlertRepository(client, cfg.Backend.AlertsPath)

	services := view.Services{
		Dashboard:  dashboardService.NewDashboardService(dashboardRepo),
		Employees:  employeeService.NewEmployeeService(employeeRepo),
		Attendance: attendanceService.NewAttendanceService(attendanceRepo),
		Alerts:     alertService.NewAlertService(alertRepo, employeeRepo),
		Reports:    reportService.NewReportService(),
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub(64)
	sessions := view.NewSessions(func(id string) *view.Controller {
		return view.NewController(id, services, renderer, hub, view.Config{
			ActivityLimit: cfg.Poll.ActivityLimit,
		})
	}, cfg.Session.IdleTimeout, hub.Drop)

	scheduler := cron.NewScheduler()
	cron.NewDashboardJobs(sessions, cfg.Poll.Interval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			SessionStore:   middleware.NewSessionStore(cfg.Session.Secret, cfg.App.Env == "production"),
		},
		appHTTP.NewDashboardHandler(sessions, hub),
		appHTTP.NewEmployeeHandler(sessions),
		appHTTP.NewAlertHandler(sessions),
		appHTTP.NewReportHandler(sessions),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end with this context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", fmt.Sprintf("http://localhost%s/dashboard", server.Addr), "backend", cfg.Backend.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-dashboard"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}
