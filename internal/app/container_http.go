package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"service-parcel/internal/auth"
	"service-parcel/internal/config"
	"service-parcel/internal/http/handlers"
	"service-parcel/internal/http/middleware"
	"service-parcel/internal/http/middleware/ratelimit"
	"service-parcel/internal/http/router"
	"service-parcel/internal/logx"
	"service-parcel/internal/metrics"
)

type authIn struct {
	dig.In
	Tokens   *auth.TokenService
	Logger   logx.Logger
	Rejected prometheus.Counter `name:"auth_rejected_total"`
}

func newAuth(in authIn) *middleware.Auth {
	return middleware.NewAuth(in.Tokens, in.Logger, in.Rejected)
}

type routerIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Registry *prometheus.Registry
	HTTP     *metrics.HTTP

	Auth      *middleware.Auth
	RateLimit *ratelimit.Middleware

	Base        *handlers.Handlers
	Tokens      *handlers.TokenHandler
	Users       *handlers.UserHandler
	Parcels     *handlers.ParcelHandler
	Assignments *handlers.AssignmentHandler
}

func newRouter(in routerIn) http.Handler {
	var limit func(http.Handler) http.Handler
	if in.Config.RateLimit.Enabled {
		limit = in.RateLimit.Handler()
	}
	return router.New(router.Routes{
		Base:        in.Base,
		Tokens:      in.Tokens,
		Users:       in.Users,
		Parcels:     in.Parcels,
		Assignments: in.Assignments,
	}, router.Middlewares{
		Logger:      in.Logger,
		Auth:        in.Auth,
		RateLimit:   limit,
		HTTPMetrics: in.HTTP,
		Metrics:     promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{Registry: in.Registry}),
		CORSOrigins: in.Config.CORS.AllowedOrigins,
	})
}
