package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"service-parcel/internal/http/handlers"
	"service-parcel/internal/http/middleware"
	"service-parcel/internal/logx"
	"service-parcel/internal/metrics"
)

const requestTimeout = 5 * time.Second

// Routes groups the handlers mounted by New.
type Routes struct {
	Base        *handlers.Handlers
	Tokens      *handlers.TokenHandler
	Users       *handlers.UserHandler
	Parcels     *handlers.ParcelHandler
	Assignments *handlers.AssignmentHandler
}

// Middlewares carries the cross-cutting pieces of the chain. Nil fields are skipped.
type Middlewares struct {
	Logger      logx.Logger
	Auth        *middleware.Auth
	RateLimit   func(http.Handler) http.Handler
	HTTPMetrics *metrics.HTTP
	Metrics     http.Handler
	CORSOrigins []string
}

// New constructs a chi-based http.Handler with base middleware and routes.
// It panics when mw.Auth is nil.
func New(rt Routes, mw Middlewares) http.Handler {
	if mw.Auth == nil {
		panic("router: auth middleware is required")
	}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(newCORS(mw.CORSOrigins).Handler)
	r.Use(middleware.Observability(mw.Logger, mw.HTTPMetrics))
	r.Use(middleware.Recover(mw.Logger))
	if mw.RateLimit != nil {
		r.Use(mw.RateLimit)
	}
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/", rt.Base.Root)
	r.Get("/ping", rt.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(rt.Base.HealthcheckHead))
	if mw.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", mw.Metrics)
	}

	r.Post("/jwt", rt.Tokens.Issue)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", rt.Users.Register)
		r.Patch("/deliveryman/{id}", rt.Users.PromoteToDeliveryMan)
		r.Patch("/admin/{id}", rt.Users.PromoteToAdmin)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth.Authenticate)
			r.Get("/", rt.Users.List)

			r.Group(func(r chi.Router) {
				r.Use(mw.Auth.RequireEmailMatch("email"))
				r.Get("/admin/{email}", rt.Users.IsAdmin)
				r.Get("/deliveryMen/{email}", rt.Users.IsDeliveryMan)
			})
		})
	})

	r.Route("/parcels", func(r chi.Router) {
		r.Post("/", rt.Parcels.Create)
		r.Get("/", rt.Parcels.List)
		r.Get("/{id}", rt.Parcels.GetByID)
		r.Patch("/{id}", rt.Parcels.Replace)
		r.Patch("/{id}/onTheWay", rt.Parcels.MarkEnRoute)
		r.Delete("/{id}", rt.Parcels.Delete)
	})
	r.Get("/myParcels", rt.Parcels.ListMine)

	r.Post("/deliveryAssign", rt.Assignments.Record)

	r.NotFound(rt.Base.NotFound)
	r.MethodNotAllowed(rt.Base.MethodNotAllowed)

	return r
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})
}
