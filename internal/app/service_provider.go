package app

import (
	"context"
	accountAPI "wager_engine/internal/api/account"
	gamesAPI "wager_engine/internal/api/games"
	wagerAPI "wager_engine/internal/api/wager"
	"wager_engine/internal/config"
	"wager_engine/internal/config/env"
	"wager_engine/internal/games"
	"wager_engine/internal/middleware"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"
	"wager_engine/internal/repository/ledger_repo"
	"wager_engine/internal/repository/stats_repo"
	"wager_engine/internal/repository/transfer_repo"
	"wager_engine/internal/repository/wager_repo"
	"wager_engine/internal/service"
	"wager_engine/internal/service/account"
	"wager_engine/internal/service/wager"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Engine bits
	engineCfg config.EngineConfig
	gamesCfg  config.GamesConfig
	catalog   map[model.GameKind]games.Game

	// Ledger and archive
	ledgerRepo   repository.LedgerRepository
	wagerRepo    repository.WagerRepository
	transferRepo repository.TransferRepository
	statsRepo    repository.StatsRepository

	// Services
	wagerServ   service.WagerService
	accountServ service.AccountService

	// Handlers
	wagerHand   *wagerAPI.Handler
	accountHand *accountAPI.Handler
	gamesHand   *gamesAPI.Handler

	// Router, HTTP and JWT config
	jwtCfg  config.JWTConfig
	httpCfg config.HTTPConfig
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

func (sp *ServiceProvider) EngineCfg() config.EngineConfig {
	if sp.engineCfg == nil {
		cfg, err := env.NewEngineConfig()
		if err != nil {
			panic("failed to get engine config: " + err.Error())
		}
		sp.engineCfg = cfg
	}
	return sp.engineCfg
}

func (sp *ServiceProvider) GamesCfg() config.GamesConfig {
	if sp.gamesCfg == nil {
		cfg, err := env.NewGamesConfigFromYAML(sp.EngineCfg().GamesConfigPath())
		if err != nil {
			panic("failed to get games config: " + err.Error())
		}
		sp.gamesCfg = cfg
	}
	return sp.gamesCfg
}

func (sp *ServiceProvider) Catalog() map[model.GameKind]games.Game {
	if sp.catalog == nil {
		catalog, err := games.NewCatalog(sp.GamesCfg())
		if err != nil {
			panic("invalid game tables: " + err.Error())
		}
		sp.catalog = catalog
	}
	return sp.catalog
}

func (sp *ServiceProvider) LedgerRepository(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx))
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) WagerRepository(ctx context.Context) repository.WagerRepository {
	if sp.wagerRepo == nil {
		sp.wagerRepo = wager_repo.NewWagerRepository(sp.DBClient(ctx))
	}
	return sp.wagerRepo
}

func (sp *ServiceProvider) TransferRepository(ctx context.Context) repository.TransferRepository {
	if sp.transferRepo == nil {
		sp.transferRepo = transfer_repo.NewTransferRepository(sp.DBClient(ctx))
	}
	return sp.transferRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		targets := make(map[model.GameKind]float64, len(sp.EngineCfg().GameTargetRTP()))
		for game, rtp := range sp.EngineCfg().GameTargetRTP() {
			targets[model.GameKind(game)] = rtp
		}
		sp.statsRepo = stats_repo.NewStatsRepository(sp.EngineCfg().StatsWindow(), sp.EngineCfg().TargetRTP()).
			WithTargets(targets)
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) Sources() wager.SourceFactory {
	if seed := sp.EngineCfg().Seed(); seed != "" {
		return wager.SeededSources(seed)
	}
	return wager.CryptoSources()
}

func (sp *ServiceProvider) WagerService(ctx context.Context) service.WagerService {
	if sp.wagerServ == nil {
		sp.wagerServ = wager.NewWagerService(
			sp.Catalog(),
			sp.LedgerRepository(ctx),
			sp.WagerRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
			sp.Sources(),
		)
	}
	return sp.wagerServ
}

func (sp *ServiceProvider) AccountService(ctx context.Context) service.AccountService {
	if sp.accountServ == nil {
		sp.accountServ = account.NewAccountService(
			sp.LedgerRepository(ctx),
			sp.TransferRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
		)
	}
	return sp.accountServ
}

func (sp *ServiceProvider) WagerHandler(ctx context.Context) *wagerAPI.Handler {
	if sp.wagerHand == nil {
		sp.wagerHand = wagerAPI.NewHandler(wagerAPI.HandlerDeps{Serv: sp.WagerService(ctx)})
	}
	return sp.wagerHand
}

func (sp *ServiceProvider) AccountHandler(ctx context.Context) *accountAPI.Handler {
	if sp.accountHand == nil {
		sp.accountHand = accountAPI.NewHandler(accountAPI.HandlerDeps{Serv: sp.AccountService(ctx)})
	}
	return sp.accountHand
}

func (sp *ServiceProvider) GamesHandler() *gamesAPI.Handler {
	if sp.gamesHand == nil {
		catalog := sp.Catalog()
		kinds := make([]model.GameKind, 0, len(catalog))
		for kind := range catalog {
			kinds = append(kinds, kind)
		}
		sp.gamesHand = gamesAPI.NewHandler(gamesAPI.HandlerDeps{
			Games:  kinds,
			Cases:  catalog[model.GameCases].(*games.CasesGame),
			Plinko: catalog[model.GamePlinko].(*games.PlinkoGame),
		})
	}
	return sp.gamesHand
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

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		wagerHandler := sp.WagerHandler(ctx)
		accountHandler := sp.AccountHandler(ctx)
		gamesHandler := sp.GamesHandler()

		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			// Wager endpoints
			rr.Route("/wagers", func(wr chi.Router) {
				wr.Post("/", wagerHandler.Start)
				wr.Get("/{id}", wagerHandler.Get)
				wr.Post("/{id}/actions", wagerHandler.Act)
				wr.Post("/{id}/settle", wagerHandler.Settle)
			})

			// Account endpoints
			rr.Route("/account", func(ar chi.Router) {
				ar.Get("/", accountHandler.Account)
				ar.Post("/deposit", accountHandler.Deposit)
				ar.Post("/transfer", accountHandler.Transfer)
				ar.Get("/transfers", accountHandler.Transfers)
			})

			rr.Get("/games", gamesHandler.List)
			rr.Get("/games/stats", accountHandler.Stats)
		})

		sp.router = r
	}

	return sp.router
}
