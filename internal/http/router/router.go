package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-tracking/internal/http/handlers"
	appmw "service-tracking/internal/http/middleware"
	"service-tracking/internal/http/middleware/ratelimit"
	"service-tracking/internal/logx"
)

// Deps is everything the public router mounts.
type Deps struct {
	Logger        logx.Logger
	Base          *handlers.Handlers
	Fees          *handlers.FeeHandler
	Deliveries    *handlers.DeliveryHandler
	Couriers      *handlers.CourierHandler
	Tracking      http.Handler
	Authenticator appmw.Authenticator
	RateLimit     *ratelimit.Middleware
	Timeout       time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}

	// /ws живёт дольше любого таймаута
	if d.Tracking != nil {
		r.Get("/ws", d.Tracking.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(d.Timeout))

		r.Get("/ping", d.Base.Ping)
		r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))

		r.Get("/v1/fees", d.Fees.ByDistance)
		r.Post("/v1/fees/quote", d.Fees.Quote)
		r.Get("/v1/zones", d.Fees.Zones)

		r.Group(func(r chi.Router) {
			r.Use(appmw.RequireIdentity(d.Authenticator, d.Logger))

			r.Put("/v1/zones", d.Fees.ReplaceZones)

			r.Post("/v1/deliveries", d.Deliveries.Create)
			r.Get("/v1/deliveries/{id}", d.Deliveries.Get)
			r.Post("/v1/deliveries/{id}/assign", d.Deliveries.Assign)
			r.Post("/v1/deliveries/{id}/status", d.Deliveries.ChangeStatus)

			r.Put("/v1/couriers/{id}", d.Couriers.Upsert)
			r.Post("/v1/couriers/{id}/deactivate", d.Couriers.Deactivate)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
