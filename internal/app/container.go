package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/dig"

	"service-parcel/internal/auth"
	"service-parcel/internal/config"
	"service-parcel/internal/http/handlers"
	"service-parcel/internal/http/pprofserver"
	"service-parcel/internal/logx"
	"service-parcel/internal/repository"
	"service-parcel/internal/service/assignment"
	"service-parcel/internal/service/parcel"
	"service-parcel/internal/service/user"
	"service-parcel/internal/transport/kafka"
)

type mongoConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*mongo.Client, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	mongoConnect mongoConnectFunc
	loadConfig   func() (*config.Config, error)
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		mongoConnect: connectMongoWithRetry,
		loadConfig:   config.Load,
		logFatalf:    log.Fatalf,
	}
}

// WithMongoConnect sets the database connection function
func (b *ContainerBuilder) WithMongoConnect(fn mongoConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.mongoConnect = fn
	}
	return b
}

// WithConfigLoader replaces config.Load
func (b *ContainerBuilder) WithConfigLoader(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMongo(container, b.mongoConnect); err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		load,
		func(cfg *config.Config) time.Duration { return cfg.OperationTimeout },
	)
}

var ensureIndexes = repository.EnsureIndexes

func registerMongo(container *dig.Container, connect mongoConnectFunc) error {
	providerClient := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*mongo.Client, error) {
		return connect(ctx, logger, cfg.Mongo.ConnectionString(), 10, time.Second)
	}
	providerDB := func(ctx context.Context, cfg *config.Config, client *mongo.Client, logger logx.Logger) *mongo.Database {
		db := client.Database(cfg.Mongo.Name)
		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := ensureIndexes(idxCtx, db); err != nil {
			logger.Warn("mongo indexes not ensured", logx.String("db", cfg.Mongo.Name), logx.Err(err))
		}
		return db
	}
	return provideAll(container, providerClient, providerDB)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewParcelRepo,
		repository.NewAssignmentRepo,
		func(repo *repository.UserRepo, timeout time.Duration) *user.Service {
			return user.NewService(repo, timeout)
		},
		func(repo *repository.ParcelRepo, timeout time.Duration) *parcel.Service {
			return parcel.NewService(repo, timeout)
		},
		newProducer,
		func(
			repo *repository.AssignmentRepo,
			timeout time.Duration,
			producer *kafka.Producer,
			logger logx.Logger,
		) *assignment.Service {
			opts := []assignment.Option{assignment.WithLogger(logger)}
			if producer != nil {
				opts = append(opts, assignment.WithPublisher(producer))
			}
			return assignment.NewService(repo, timeout, opts...)
		},
		func(cfg *config.Config) (*auth.TokenService, error) {
			return auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewTokenIssuer,
		handlers.NewTokenHandler,
		handlers.NewUserUsecase,
		handlers.NewUserHandler,
		handlers.NewParcelUsecase,
		handlers.NewParcelHandler,
		handlers.NewAssignmentUsecase,
		handlers.NewAssignmentHandler,
		newAuth,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

// newPprofServer yields a nil server when profiling is disabled.
func newPprofServer(cfg *config.Config) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.New(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})}
}
