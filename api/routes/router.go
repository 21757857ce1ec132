package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/orderdesk-backend/api/controllers"
	authcontrollers "github.com/angelmondragon/orderdesk-backend/api/controllers/auth"
	ordercontrollers "github.com/angelmondragon/orderdesk-backend/api/controllers/orders"
	usercontrollers "github.com/angelmondragon/orderdesk-backend/api/controllers/users"
	"github.com/angelmondragon/orderdesk-backend/api/middleware"
	"github.com/angelmondragon/orderdesk-backend/internal/auth"
	"github.com/angelmondragon/orderdesk-backend/internal/orders"
	"github.com/angelmondragon/orderdesk-backend/internal/users"
	"github.com/angelmondragon/orderdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
	"github.com/angelmondragon/orderdesk-backend/pkg/metrics"
	"github.com/angelmondragon/orderdesk-backend/pkg/redis"
)

// Deps are the collaborators the HTTP surface is built from. Redis, HTTPMetrics
// and Gatherer are optional; Redis is only probed by the readiness check.
type Deps struct {
	DB          controllers.Pinger
	Redis       *redis.Client
	Sessions    session.Checker
	UserLoader  middleware.UserLoader
	Auth        auth.Service
	Users       users.Service
	Orders      orders.Service
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		deps.HTTPMetrics.Middleware,
		middleware.CORS(cfg.App.CORSOrigins),
	)
	r.NotFound(controllers.NotFound(logg))
	r.MethodNotAllowed(controllers.MethodNotAllowed(logg))

	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["database"] = deps.DB
	}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Get("/login", controllers.LoginRequired(logg))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authcontrollers.Login(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, deps.UserLoader, logg))

			r.Post("/logout", authcontrollers.Logout(deps.Auth, logg))

			r.Get("/users", usercontrollers.List(deps.Users, logg))
			r.Post("/user", usercontrollers.Create(deps.Users, logg))
			r.Get("/user/{id}", usercontrollers.Show(deps.Users, logg))
			r.Put("/user/{id}", usercontrollers.Update(deps.Users, logg))
			r.Delete("/user/{id}", usercontrollers.Delete(deps.Users, logg))

			r.Get("/orders", ordercontrollers.List(deps.Orders, logg))
			r.Get("/confirmed-orders", ordercontrollers.ListConfirmed(deps.Orders, logg))
			r.Post("/order", ordercontrollers.Create(deps.Orders, logg))
			r.Get("/order/{id}", ordercontrollers.Show(deps.Orders, logg))
			r.Put("/order/{id}", ordercontrollers.Update(deps.Orders, logg))
			r.Delete("/order/{id}", ordercontrollers.Delete(deps.Orders, logg))
			r.Patch("/order/{id}/confirm", ordercontrollers.Confirm(deps.Orders, logg))
		})
	})

	return r
}
