package app

import (
	"context"
	"log"
	"os"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/database/seeder"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"
)

// Container wires the full dependency graph: storage, cache, usecases,
// handlers, and the websocket hub.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   jwt.Service

	Hub       *ws.Hub
	WSHandler *ws.Handler

	HealthHandler         *handler.HealthHandler
	AuthHandler           *handler.AuthHandler
	UserHandler           *handler.UserHandler
	SkillHandler          *handler.SkillHandler
	MatchHandler          *handler.MatchHandler
	RecommendationHandler *handler.RecommendationHandler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.RunSeeders {
		if err := seeder.Run(ctx, db, logger); err != nil {
			logger.Printf("Seeder | failed: %v", err)
		}
	}

	store := cache.NewRedis(cfg.Redis, logger)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)

	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, store, logger)
	matchUC := usecase.NewMatchUsecase(matchRepo, skillRepo, store, notifier, logger)
	suggestionUC := usecase.NewSuggestionUsecase(skillRepo, store, logger)
	recommendationUC := usecase.NewRecommendationUsecase(skillRepo, matchRepo, store, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		DB:                    db,
		Cache:                 store,
		JWT:                   jwtSvc,
		Hub:                   hub,
		WSHandler:             ws.NewHandler(hub, jwtSvc, logger),
		HealthHandler:         handler.NewHealthHandler(db),
		AuthHandler:           handler.NewAuthHandler(authUC),
		UserHandler:           handler.NewUserHandler(userUC),
		SkillHandler:          handler.NewSkillHandler(skillUC, suggestionUC),
		MatchHandler:          handler.NewMatchHandler(matchUC),
		RecommendationHandler: handler.NewRecommendationHandler(recommendationUC),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
