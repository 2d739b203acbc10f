package http

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orgware/staffd/internal/audit"
	"github.com/orgware/staffd/internal/config"
	analyticsfeature "github.com/orgware/staffd/internal/http/features/analytics"
	authfeature "github.com/orgware/staffd/internal/http/features/auth"
	"github.com/orgware/staffd/internal/http/features/employees"
	"github.com/orgware/staffd/internal/http/features/logs"
	"github.com/orgware/staffd/internal/http/features/teams"
	"github.com/orgware/staffd/internal/http/middleware"
	"github.com/orgware/staffd/internal/httputil"
	"github.com/orgware/staffd/pkg/analytics"
	"github.com/orgware/staffd/pkg/auth"
	"github.com/orgware/staffd/pkg/repository"
)

// RouterConfig holds the dependencies for the router.
type RouterConfig struct {
	Logger       *slog.Logger
	DB           *sql.DB
	TokenService *auth.TokenService
	AuthService  *auth.Service
	Employees    *repository.EmployeesRepository
	Teams        *repository.TeamsRepository
	Memberships  *repository.MembershipsRepository
	Logs         *repository.LogsRepository
	Analytics    *analytics.Service
	Audit        *audit.Recorder
	RateLimit    config.RateLimitConfig
}

// NewRouter creates the HTTP router with all routes registered. Every
// /api route except register and login sits behind the tenant guard.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler := authfeature.NewHandler(cfg.Logger, cfg.AuthService, cfg.Audit)
	employeesHandler := employees.NewHandler(cfg.Logger, cfg.Employees, cfg.Audit)
	teamsHandler := teams.NewHandler(cfg.Logger, cfg.DB, cfg.Teams, cfg.Employees, cfg.Memberships, cfg.Audit)
	analyticsHandler := analyticsfeature.NewHandler(cfg.Logger, cfg.Analytics)
	logsHandler := logs.NewHandler(cfg.Logger, cfg.Logs)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimit, cfg.Logger))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.TokenService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/employees", employeesHandler.List)
			r.Post("/employees", employeesHandler.Create)
			r.Get("/employees/{id}", employeesHandler.Get)
			r.Put("/employees/{id}", employeesHandler.Update)
			r.Delete("/employees/{id}", employeesHandler.Delete)

			r.Get("/teams", teamsHandler.List)
			r.Post("/teams", teamsHandler.Create)
			r.Get("/teams/{id}", teamsHandler.Get)
			r.Put("/teams/{id}", teamsHandler.Update)
			r.Delete("/teams/{id}", teamsHandler.Delete)
			r.Post("/teams/{id}/assign", teamsHandler.Assign)
			r.Post("/teams/{id}/unassign", teamsHandler.Unassign)

			r.Get("/analytics", analyticsHandler.Get)
			r.Get("/logs", logsHandler.List)
		})
	})

	return r
}
