package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/repo/postgres"
	"github.com/cardoctor/cardoctor-api/pkg/config"
	"github.com/cardoctor/cardoctor-api/pkg/events"
	mw "github.com/cardoctor/cardoctor-api/pkg/middleware"
)

// RouterDeps holds everything the HTTP surface depends on. RateLimiter and
// IdempotencyStore are optional.
type RouterDeps struct {
	Config           *config.Config
	Bookings         postgres.BookingsRepo
	Services         postgres.ServicesRepo
	Publisher        events.Publisher
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore mw.IdempotencyStore
}

func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Metrics)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authH := NewAuthHandler(deps.Config.Auth)
	servicesH := NewServicesHandler(deps.Services)
	bookingsH := NewBookingsHandler(deps.Bookings, deps.Publisher)

	limit := func(next http.Handler) http.Handler { return next }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Middleware()
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Car doctor server is running"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Session issuance and teardown
	r.With(limit).Post("/jwt", authH.IssueToken)
	r.Post("/logout", authH.Logout)

	// Catalog (unguarded)
	r.Get("/services", servicesH.List)
	r.Get("/services/{id}", servicesH.Get)
	r.Get("/service/{id}", servicesH.GetSummary)

	// Booking creation (unguarded, optionally idempotent)
	create := r.With(limit)
	if deps.IdempotencyStore != nil {
		create = create.With(mw.Idempotency(deps.IdempotencyStore))
	}
	create.Post("/bookings", bookingsH.Create)

	// Ownership-guarded booking operations
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(deps.Config.Auth.JWTSecret))
		r.Get("/bookings", bookingsH.ListOwn)
		r.Patch("/booking/{id}", bookingsH.UpdateStatus)
		r.Delete("/booking/{id}", bookingsH.Delete)
	})

	return r
}
