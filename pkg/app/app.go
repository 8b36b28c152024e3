// Package app is the composition root of the sales desk. It turns a
// *config.Config into connected stores, services and transports, and hands
// the CLI one object to drive:
//
//	a, err := app.Boot(ctx, cfg)
//	if err != nil { ... }
//	defer a.Close()
//	err = a.Serve(ctx)
//
// Nothing below this package reads configuration on its own.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/salesdesk/app/repositories"
	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/config"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
	"github.com/shashiranjanraj/salesdesk/pkg/cache"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
	"github.com/shashiranjanraj/salesdesk/pkg/event"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/workerpool"
)

// cachePrefix namespaces every Redis key the service writes.
const cachePrefix = "salesdesk:"

// Application holds every long-lived dependency of a running process.
type Application struct {
	Config   *config.Config
	Mongo    *mongo.Client
	DB       *mongo.Database
	Cache    *cache.Redis
	Issuer   *auth.Issuer
	Bus      *event.Bus
	Services *services.Services

	pool    *workerpool.Pool
	logSink *logger.MongoHandler
}

// Boot connects to MongoDB and Redis and wires the services. On error every
// connection opened so far is closed again.
func Boot(ctx context.Context, cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Setup(cfg.AppEnv)

	a := &Application{Config: cfg, Issuer: auth.NewIssuer(cfg.TokenSecret)}
	if err := a.connect(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.pool = workerpool.New("events", runtime.NumCPU())
	a.Bus = event.NewBus(a.pool)
	a.Services = services.New(a.deps())
	return a, nil
}

func (a *Application) connect(ctx context.Context) error {
	cfg := a.Config

	var err error
	a.Mongo, a.DB, err = database.Connect(ctx, cfg.MongoURI(), cfg.DBName, cfg.DBTimeout)
	if err != nil {
		return err
	}
	logger.Info("connected to MongoDB", "database", cfg.DBName)

	if cfg.LogMongo {
		a.logSink = logger.NewMongoHandler(ctx, a.DB.Collection(database.Logs), slog.LevelInfo)
		logger.Setup(cfg.AppEnv, a.logSink)
	}

	a.Cache, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cachePrefix)
	if err != nil {
		return err
	}
	if a.Cache != nil {
		logger.Info("report cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.ReportCacheTTL.String())
	}
	return nil
}

func (a *Application) deps() services.Deps {
	d := services.Deps{
		Users:    repositories.NewUserRepository(a.DB),
		Products: repositories.NewProductRepository(a.DB),
		Clients:  repositories.NewClientRepository(a.DB),
		Orders:   repositories.NewOrderRepository(a.DB),
		Issuer:   a.Issuer,
		TokenTTL: a.Config.TokenTTL,
		Events:   a.Bus,
	}
	// A nil *cache.Redis in the interface would still be non-nil.
	if a.Cache != nil {
		d.Cache = a.Cache
		d.CacheTTL = a.Config.ReportCacheTTL
	}
	return d
}

// Close drains the event pool, flushes the log sink and disconnects.
func (a *Application) Close() {
	if a.pool != nil {
		a.pool.Shutdown()
	}
	if err := a.Cache.Close(); err != nil {
		logger.Warn("redis close failed", "error", err)
	}
	if a.logSink != nil {
		logger.Setup(a.Config.AppEnv)
		a.logSink.Close()
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
}

// Migrate creates the collection indexes. It is safe to run repeatedly.
func (a *Application) Migrate(ctx context.Context) ([]string, error) {
	names, err := repositories.EnsureIndexes(ctx, a.DB)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return names, nil
}
