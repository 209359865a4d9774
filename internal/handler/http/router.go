package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/attendance-backend-go/internal/config"
	"github.com/presensia/attendance-backend-go/internal/handler/http/middleware"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	qrTokenHandler QRTokenHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presensia-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.GetToday)
				r.Post("/today", attendanceHandler.GetOrCreateToday)
				r.Get("/calendar/{year}", reportHandler.GetMyYearlyCalendar)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/report", reportHandler.GetReport)
					r.Get("/tracking", reportHandler.GetTracking)
					r.Get("/calendar/{year}/all", reportHandler.GetUserYearlyCalendar)
					r.Post("/admin-action", attendanceHandler.AdminAction)
					r.Post("/manual", attendanceHandler.CreateManualEntry)
					r.Put("/{id}", attendanceHandler.AdminEdit)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/qr", func(r chi.Router) {
				r.Post("/verify", qrTokenHandler.Verify)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/current", qrTokenHandler.GetCurrent)
					r.Post("/issue", qrTokenHandler.Issue)
				})
			})

			r.Get("/working-days/check", calendarHandler.CheckWorkingDay)

			r.Route("/working-days/{year}/{month}", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", calendarHandler.GetWorkingDays)
				r.Put("/", calendarHandler.UpdateWorkingDays)
				r.Delete("/", calendarHandler.ResetWorkingDays)
				r.Post("/apply-to-users", calendarHandler.ApplyToUsers)
				r.Post("/revert-to-global", calendarHandler.RevertToGlobal)

				r.Route("/users/{userId}", func(r chi.Router) {
					r.Get("/", calendarHandler.GetUserWorkingDays)
					r.Put("/", calendarHandler.UpdateUserWorkingDays)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
