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

	"github.com/cmlabs-hris/kintai-backend-go/internal/config"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/kintai-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/slack"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/postgresql"
	approvalService "github.com/cmlabs-hris/kintai-backend-go/internal/service/approval"
	attendanceService "github.com/cmlabs-hris/kintai-backend-go/internal/service/attendance"
	dailyReportService "github.com/cmlabs-hris/kintai-backend-go/internal/service/dailyreport"
	exportService "github.com/cmlabs-hris/kintai-backend-go/internal/service/export"
	holidayService "github.com/cmlabs-hris/kintai-backend-go/internal/service/holiday"
	notificationService "github.com/cmlabs-hris/kintai-backend-go/internal/service/notification"
	reimbursementService "github.com/cmlabs-hris/kintai-backend-go/internal/service/reimbursement"
	settlementService "github.com/cmlabs-hris/kintai-backend-go/internal/service/settlement"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTxRunner(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settlementRepo := postgresql.NewSettlementRepository(db)
	reimbursementRepo := postgresql.NewReimbursementRepository(db)
	dailyReportRepo := postgresql.NewDailyReportRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	var chat notification.Sink
	if cfg.Slack.BotToken != "" {
		chat = notificationService.NewSlackSink(
			slack.NewClient(cfg.Slack.BotToken, cfg.Slack.AdminChannel, cfg.Slack.APIURL),
			employeeRepo,
		)
	} else {
		slog.Info("SLACK_BOT_TOKEN not set, chat notifications are logged only")
		chat = notificationService.NewLogSink()
	}
	hub := sse.NewHub()
	dispatcher := notificationService.NewDispatcher(
		notificationService.NewMultiSink(chat, notificationService.NewHubSink(hub)),
		notificationService.Config{},
	)
	defer dispatcher.Stop()

	policy := cfg.Policy()
	holidays := holidayService.NewHolidayService(holidayRepo)
	gate := approvalService.NewGate(approvalRepo)

	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, approvalRepo, gate, holidays, policy)
	approvalSvc := approvalService.NewApprovalService(tx, approvalRepo, gate, dispatcher, map[approval.ReportType]approval.SubmitCheck{
		approval.ReportAttendance: attendanceSvc.ValidateForSubmit,
	})
	settlementSvc := settlementService.NewSettlementService(tx, settlementRepo, approvalRepo, gate)
	reimbursementSvc := reimbursementService.NewReimbursementService(tx, reimbursementRepo, approvalRepo, gate)
	dailyReportSvc := dailyReportService.NewDailyReportService(tx, dailyReportRepo, employeeRepo, dispatcher)
	exportSvc := exportService.NewExportService(
		attendanceRepo,
		settlementRepo,
		reimbursementRepo,
		employeeRepo,
		approvalRepo,
		holidays,
		policy,
	)

	scheduler := cron.NewScheduler()
	if cfg.Reminder.Enabled {
		cron.NewReminderJobs(approvalRepo, employeeRepo, dispatcher, cfg.Reminder.Hour, cfg.Reminder.Days).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		FrontendURL: cfg.App.FrontendURL,
		Env:         cfg.App.Env,
		Version:     version,
		LogLevel:    cfg.LogLevel(),
	}, JWTService, appHTTP.Handlers{
		Approval:      appHTTP.NewApprovalHandler(approvalSvc),
		Attendance:    appHTTP.NewAttendanceHandler(attendanceSvc),
		Settlement:    appHTTP.NewSettlementHandler(settlementSvc),
		Reimbursement: appHTTP.NewReimbursementHandler(reimbursementSvc),
		DailyReport:   appHTTP.NewDailyReportHandler(dailyReportSvc),
		Export:        appHTTP.NewExportHandler(exportSvc),
		Notification:  appHTTP.NewNotificationHandler(hub),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
