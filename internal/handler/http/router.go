package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the process settings the router needs.
type RouterConfig struct {
	FrontendURL string
	Env         string
	Version     string
	LogLevel    slog.Level
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Approval      ApprovalHandler
	Attendance    AttendanceHandler
	Settlement    SettlementHandler
	Reimbursement ReimbursementHandler
	DailyReport   DailyReportHandler
	Export        ExportHandler
	Notification  NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot set headers, so the stream also takes ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Get("/notifications/stream", h.Notification.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Post("/approval/status", h.Approval.Status)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/month", h.Attendance.Month)
				r.Post("/save", h.Attendance.Save)
				r.Post("/delete", h.Attendance.Delete)
				mountLifecycle(r, h.Approval, approval.ReportAttendance)
			})

			r.Route("/settlement", func(r chi.Router) {
				r.Post("/list", h.Settlement.List)
				r.Post("/create", h.Settlement.Create)
				r.Post("/update", h.Settlement.Update)
				r.Post("/delete", h.Settlement.Delete)
				r.Post("/swap", h.Settlement.Swap)
				mountLifecycle(r, h.Approval, approval.ReportSettlement)
			})

			r.Route("/reimbursement", func(r chi.Router) {
				r.Post("/list", h.Reimbursement.List)
				r.Post("/create", h.Reimbursement.Create)
				r.Post("/update", h.Reimbursement.Update)
				r.Post("/delete", h.Reimbursement.Delete)
				mountLifecycle(r, h.Approval, approval.ReportReimbursement)
			})

			r.Route("/daily-report", func(r chi.Router) {
				r.Post("/list", h.DailyReport.List)
				r.Post("/create", h.DailyReport.Create)
				r.Post("/sections/update", h.DailyReport.UpdateSection)
				r.Post("/sections/transition", h.DailyReport.TransitionSection)
			})

			// Export only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportExport))
				r.Post("/export/{reportType}", h.Export.Export)
			})
		})
	})
	return r
}

func mountLifecycle(r chi.Router, h ApprovalHandler, rt approval.ReportType) {
	r.Post("/submit", h.Submit(rt))
	r.Post("/withdraw", h.Withdraw(rt))

	// Approver only
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(user.PermissionReportApprove))
		r.Post("/approve", h.Approve(rt))
		r.Post("/reject", h.Reject(rt))
	})
}
