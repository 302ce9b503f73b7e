// Package console assembles the admin console application: storage,
// cache, broker, services, router and HTTP server.
package console

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/infom4th/club-console/internal/cache"
	"github.com/infom4th/club-console/internal/config"
	"github.com/infom4th/club-console/internal/lib/jwt"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/migrations"
	"github.com/infom4th/club-console/internal/obs"
	"github.com/infom4th/club-console/internal/rabbitmq"
	auditservice "github.com/infom4th/club-console/internal/services/audit"
	authservice "github.com/infom4th/club-console/internal/services/auth"
	contentservice "github.com/infom4th/club-console/internal/services/content"
	dashboardservice "github.com/infom4th/club-console/internal/services/dashboard"
	joinrequestservice "github.com/infom4th/club-console/internal/services/joinrequest"
	profileservice "github.com/infom4th/club-console/internal/services/profile"
	searchservice "github.com/infom4th/club-console/internal/services/search"
	"github.com/infom4th/club-console/internal/storage/repository"
)

// App holds the wired console and its shared resources.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	refresher  *dashboardservice.Refresher
}

// New builds the application from the config. The broker is optional:
// without it join requests are stored but no notification events are
// emitted.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	obs.Init()

	var rabbitConn *amqp.Connection
	var publisher joinrequestservice.Publisher
	if cfg.AddressRabbit != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(rabbitConn)
		if err != nil {
			return nil, err
		}
		publisher = joinrequestservice.NewAMQPPublisher(ch)
	} else {
		logger.Warn("broker address not configured, join request notifications disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	auditService := auditservice.New(db, logger)
	authService := authservice.New(db, jwtMaker, logger)
	profileService := profileservice.New(db, auditService, logger)
	contentService := contentservice.New(db, cacheRedis, auditService, logger)
	searchService := searchservice.New(db, logger)
	dashboardService := dashboardservice.New(db, cacheRedis, logger)
	joinService := joinrequestservice.New(db, publisher, logger)

	refresher := dashboardservice.NewRefresher(dashboardService, cfg.DashboardRefresh, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:           authService,
		Profiles:       profileService,
		Content:        contentService,
		Search:         searchService,
		SearchDebounce: cfg.SearchDebounce,
		Dashboard:      dashboardService,
		Join:           joinService,
		Audit:          auditService,
		Roles:          db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		refresher:  refresher,
	}, nil
}

// Run starts the refresher and the HTTP server and blocks until the
// context is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	go a.refresher.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Warn("failed to close database", sl.Err(cerr))
		}
		if a.rabbitConn != nil {
			if cerr := a.rabbitConn.Close(); cerr != nil {
				a.logger.Warn("failed to close broker connection", sl.Err(cerr))
			}
		}
		return err
	}
}
