package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/timeconnect/attendance-backend-go/internal/config"
	"github.com/timeconnect/attendance-backend-go/internal/domain/auth"
	"github.com/timeconnect/attendance-backend-go/internal/handler/http/middleware"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authService auth.AuthService,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeconnect-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService, authService))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/profile", authHandler.Profile)
				r.Post("/logout", authHandler.Logout)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/record", attendanceHandler.Record)
				r.Route("/employee/{identifier}", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetEmployeeAttendance)
					r.Get("/today", attendanceHandler.GetTodayAttendance)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.GetByID)
				r.Patch("/{id}", employeeHandler.Update)
				r.Get("/email/{email}", employeeHandler.GetByEmail)
				r.Get("/employeeId/{employeeId}", employeeHandler.GetByEmployeeCode)
			})

			r.Route("/reports/attendance", func(r chi.Router) {
				r.Get("/pdf", reportHandler.ExportPDF)
				r.Get("/excel", reportHandler.ExportExcel)
			})
		})
	})

	return r
}
