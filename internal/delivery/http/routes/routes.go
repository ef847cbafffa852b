package routes

import (
	"log"

	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Skill          *handler.SkillHandler
	Match          *handler.MatchHandler
	Recommendation *handler.RecommendationHandler
	WS             *ws.Handler
}

type Registry struct {
	logger   *log.Logger
	jwt      jwt.Service
	handlers Handlers
}

func NewRegistry(logger *log.Logger, jwtSvc jwt.Service, handlers Handlers) *Registry {
	return &Registry{logger: logger, jwt: jwtSvc, handlers: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(r.logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(r.logger).Middleware())

	r.handlers.Health.RegisterRoutes(app)

	if r.handlers.WS != nil {
		app.Get("/ws/matches", r.handlers.WS.HandleMatchesWS)
	}

	api := app.Group("/api")
	registerV1(api.Group("/v1"), r.jwt, r.handlers)
}
