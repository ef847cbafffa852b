package routes

import (
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

func registerV1(r fiber.Router, jwtSvc jwt.Service, handlers Handlers) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	handlers.Auth.RegisterRoutes(r.Group("/auth"))

	// Public browse endpoint; everything else requires an access token.
	handlers.Skill.RegisterPublicRoutes(r.Group("/skills"))

	protected := r.Group("", authMw.Middleware())

	handlers.User.RegisterRoutes(protected.Group("/users"))

	skills := protected.Group("/skills")
	// Static path first so it never shadows the :id routes.
	handlers.Recommendation.RegisterRoutes(skills)
	handlers.Skill.RegisterRoutes(skills)

	handlers.Match.RegisterRoutes(protected.Group("/matches"))
}
