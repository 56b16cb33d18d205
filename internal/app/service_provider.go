package app

import (
	"context"
	harvestAPI "harvest_slots/internal/api/harvest"
	"harvest_slots/internal/config"
	"harvest_slots/internal/config/env"
	"harvest_slots/internal/middleware"
	"harvest_slots/internal/repository"
	"harvest_slots/internal/repository/spin_repo"
	"harvest_slots/internal/repository/stats_repo"
	"harvest_slots/internal/repository/user_repo"
	"harvest_slots/internal/service"
	"harvest_slots/internal/service/harvest"
	"net/http"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const harvestConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisCfg     config.RedisConfig
	redisClient  *redis.Client
	rateLimitCfg config.RateLimitConfig
	rateLimiter  *middleware.RateLimiter

	// Auth bits
	jwtCfg config.JWTConfig

	// User bits
	userRepo repository.UserRepository

	// Harvest bits
	harvestCfg  config.HarvestConfig
	spinRepo    repository.SpinRepository
	statsRepo   repository.StatsRepository
	harvestServ service.HarvestService
	harvestHand *harvestAPI.Handler
	hub         *harvestAPI.Hub

	// Router and HTTP config
	httpCfg config.HTTPConfig
	logCfg  config.LogConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

// RedisClient Клиент создается лениво и не пингуется: лимитер переживает недоступный redis
func (sp *ServiceProvider) RedisClient() *redis.Client {
	if sp.redisClient == nil {
		cfg := sp.RedisCfg()
		sp.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
	}
	return sp.redisClient
}

func (sp *ServiceProvider) RateLimitCfg() config.RateLimitConfig {
	if sp.rateLimitCfg == nil {
		cfg, err := env.NewRateLimitConfig()
		if err != nil {
			panic("failed to get rate limit config: " + err.Error())
		}
		sp.rateLimitCfg = cfg
	}
	return sp.rateLimitCfg
}

func (sp *ServiceProvider) RateLimiter() *middleware.RateLimiter {
	if sp.rateLimiter == nil {
		cfg := sp.RateLimitCfg()
		sp.rateLimiter = middleware.NewRateLimiter(sp.RedisClient(), cfg.Requests(), cfg.Window())
	}
	return sp.rateLimiter
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) HarvestCfg() config.HarvestConfig {
	if sp.harvestCfg == nil {
		cfg, err := env.NewHarvestConfigFromYAML(harvestConfigPath)
		if err != nil {
			panic("failed to get harvest config: " + err.Error())
		}
		sp.harvestCfg = cfg
	}
	return sp.harvestCfg
}

func (sp *ServiceProvider) SpinRepository(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx))
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.HarvestCfg().StatsWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) HarvestService(ctx context.Context) service.HarvestService {
	if sp.harvestServ == nil {
		serv, err := harvest.NewHarvestService(
			sp.HarvestCfg(),
			sp.UserRepo(ctx),
			sp.SpinRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
		)
		if err != nil {
			panic("failed to create harvest service: " + err.Error())
		}
		sp.harvestServ = serv
	}
	return sp.harvestServ
}

func (sp *ServiceProvider) HarvestHandler(ctx context.Context) *harvestAPI.Handler {
	if sp.harvestHand == nil {
		sp.harvestHand = harvestAPI.NewHandler(harvestAPI.HandlerDeps{
			Serv: sp.HarvestService(ctx),
		})
	}
	return sp.harvestHand
}

// Hub подписан на спины всех игроков
func (sp *ServiceProvider) Hub(ctx context.Context) *harvestAPI.Hub {
	if sp.hub == nil {
		hub := harvestAPI.NewHub()
		sp.HarvestService(ctx).SubscribeSpins(hub.Publish)
		sp.hub = hub
	}
	return sp.hub
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("OK"))
		})

		// Harvest endpoints
		harvestHandler := sp.HarvestHandler(ctx)
		hub := sp.Hub(ctx)
		limiter := sp.RateLimiter()
		r.Route("/harvest", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			rr.With(limiter.Limit("spin")).Post("/spin", harvestHandler.Spin)
			rr.Post("/deposit", harvestHandler.Deposit)
			rr.Get("/check-data", harvestHandler.CheckData)
			rr.Get("/history", harvestHandler.History)
			rr.Get("/stats", harvestHandler.Stats)
			rr.Get("/catalog", harvestHandler.Catalog)
			rr.Get("/stream", hub.ServeWS)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает ресурсы, созданные провайдером
func (sp *ServiceProvider) Close() {
	if sp.hub != nil {
		sp.hub.Close()
	}
	if sp.harvestServ != nil {
		sp.harvestServ.Close()
	}
	if sp.redisClient != nil {
		sp.redisClient.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
