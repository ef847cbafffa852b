package app

import (
	"fmt"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, mounts routes, and starts the
// websocket hub. The returned cleanup releases storage connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	routes.NewRegistry(c.Logger, c.JWT, routes.Handlers{
		Health:         c.HealthHandler,
		Auth:           c.AuthHandler,
		User:           c.UserHandler,
		Skill:          c.SkillHandler,
		Match:          c.MatchHandler,
		Recommendation: c.RecommendationHandler,
		WS:             c.WSHandler,
	}).Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
