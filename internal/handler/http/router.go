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

	"github.com/clockwork-hq/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, timeClockHandler TimeClockHandler, payPeriodHandler PayPeriodHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/timeclock", func(r chi.Router) {
				r.Post("/clock-in", timeClockHandler.ClockIn)
				r.Post("/clock-out", timeClockHandler.ClockOut)
				r.Get("/status", timeClockHandler.Status)
				r.Post("/validate", timeClockHandler.Validate)
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.Get("/", timeClockHandler.ListEntries)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{entryID}", timeClockHandler.UpdateEntry)
				})
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/", payPeriodHandler.List)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/generate", payPeriodHandler.Generate)
					r.Get("/{payPeriodID}/hours", payPeriodHandler.Hours)
					r.Get("/{payPeriodID}/summary", payPeriodHandler.Summary)
					r.Post("/{payPeriodID}/approve", payPeriodHandler.Approve)
					r.Post("/{payPeriodID}/export", payPeriodHandler.Export)
				})
			})
		})
	})
	return r
}
