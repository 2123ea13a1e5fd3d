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
	"github.com/worklens/attendance-backend-go/internal/handler/http/middleware"
	"github.com/worklens/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, timesheetHandler TimesheetHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/sheets", func(r chi.Router) {
				r.Get("/", timesheetHandler.List)
				r.Post("/", timesheetHandler.Create)
				r.Post("/batch", timesheetHandler.BatchCompute)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", timesheetHandler.Get)
					r.Delete("/", timesheetHandler.Delete)

					r.Post("/compute", timesheetHandler.Compute)
					r.Post("/confirm", timesheetHandler.Confirm)
					r.Post("/approve", timesheetHandler.Approve)
					r.Post("/draft", timesheetHandler.ResetToDraft)

					r.Get("/lines", timesheetHandler.ListLines)
					r.Patch("/lines/{lineID}", timesheetHandler.AdjustLine)
					r.Get("/export", timesheetHandler.Export)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/{id}", payrollHandler.GetPayslip)
			})
		})
	})
	return r
}
