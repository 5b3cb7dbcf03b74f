package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/gorilla/sessions"

	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	SessionStore   sessions.Store
}

func NewRouter(
	cfg RouterConfig,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	alertHandler AlertHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
			// the event stream stays open for the life of the page
			Skip: func(req *http.Request, respStatus int) bool {
				return req.URL.Path == "/ui/stream"
			},
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.SessionStore))

		r.Get("/dashboard", dashboardHandler.Page)

		r.Route("/ui", func(r chi.Router) {
			r.Get("/stream", dashboardHandler.Stream)
			r.Get("/regions/{region}", dashboardHandler.Region)
			r.Post("/sections/{section}", dashboardHandler.SwitchSection)
			r.Get("/activities/{id}", dashboardHandler.ActivityDetail)

			r.Route("/employees", func(r chi.Router) {
				r.Post("/search", employeeHandler.Search)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Post("/", employeeHandler.Details)
					r.Post("/attendance", employeeHandler.Attendance)
					r.Post("/alerts", employeeHandler.Alerts)
				})
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Post("/filter", alertHandler.Filter)
				r.Post("/samples", alertHandler.GenerateSamples)
				r.Route("/{alertID}", func(r chi.Router) {
					r.Get("/", alertHandler.View)
					r.Post("/resolve", alertHandler.Resolve)
				})
			})

			r.Post("/reports/{type}", reportHandler.Generate)
		})

		r.Get("/api/v1/view/state", dashboardHandler.State)
	})

	return r
}
