package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/hr-backoffice/internal/handler/http/middleware"
	"github.com/staffdesk/hr-backoffice/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	calendarHandler CalendarHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/day-status", calendarHandler.ResolveDayStatus)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", calendarHandler.ListHolidays)
				r.With(middleware.AdminOnly).Post("/", calendarHandler.CreateHoliday)
				r.With(middleware.AdminOnly).Post("/sync", calendarHandler.SyncHolidays)
				r.With(middleware.AdminOnly).Delete("/{id}", calendarHandler.DeleteHoliday)
			})

			r.Route("/office-schedule", func(r chi.Router) {
				r.Get("/", calendarHandler.GetSchedule)
				r.With(middleware.AdminOnly).Put("/", calendarHandler.UpdateSchedule)
			})

			r.Route("/schedule-overrides", func(r chi.Router) {
				r.Get("/", calendarHandler.ListOverrides)
				r.With(middleware.AdminOnly).Post("/", calendarHandler.CreateOverride)
				r.With(middleware.AdminOnly).Delete("/{id}", calendarHandler.DeleteOverride)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.With(middleware.AdminOnly).Get("/", attendanceHandler.List)
				r.With(middleware.AdminOnly).Put("/{id}/correction", attendanceHandler.Correct)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Request)
				r.Get("/{id}", leaveHandler.Get)
				r.With(middleware.AdminOnly).Post("/{id}/approve", leaveHandler.Approve)
				r.With(middleware.AdminOnly).Post("/{id}/reject", leaveHandler.Reject)
			})

			r.Route("/salary-rules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", payrollHandler.ListSalaryRules)
				r.Post("/", payrollHandler.CreateSalaryRule)
				r.Get("/{id}", payrollHandler.GetSalaryRule)
				r.Put("/{id}", payrollHandler.UpdateSalaryRule)
				r.Delete("/{id}", payrollHandler.DeactivateSalaryRule)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/{id}", payrollHandler.Get)
				r.With(middleware.AdminOnly).Get("/", payrollHandler.List)
				r.With(middleware.AdminOnly).Post("/generate", payrollHandler.Generate)
				r.With(middleware.AdminOnly).Post("/{id}/mark-paid", payrollHandler.MarkPaid)
			})

			r.With(middleware.AdminOnly).Get("/notifications", notificationHandler.List)

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Deactivate)
			})
		})
	})
	return r
}
