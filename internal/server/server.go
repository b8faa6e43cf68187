package server

import (
	"fmt"
	"strings"
	"time"

	"ludoteca/internal/config"
	"ludoteca/internal/handlers"
	"ludoteca/internal/middleware"
	"ludoteca/internal/repositories"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the collaborators NewApp wires into the routes.
type Dependencies struct {
	Config  *config.Config
	Users   repositories.UserRepository
	Games   repositories.GameRepository
	Events  services.EventPublisher // optional
	Catalog services.CatalogClient
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp builds the fiber application with every route registered.
func NewApp(deps Dependencies) (*fiber.App, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	tokens, err := services.NewTokenCodec(deps.Config.JWTSecret)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(deps.Users, tokens)
	gameService := services.NewGameService(deps.Games, deps.Events)
	catalogService := services.NewCatalogService(deps.Catalog)

	gates := middleware.NewGates(authService)
	userHandler := handlers.NewUserHandler(authService, handlers.CookieConfig{Secure: deps.Config.IsProduction()})
	gameHandler := handlers.NewGameHandler(gameService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	app := fiber.New(fiber.Config{
		AppName: "ludoteca",
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(deps.Config.CORSOrigins),
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Events != nil,
		})
	})

	userHandler.RegisterRoutes(app, gates)

	games := app.Group("/games")
	catalogHandler.RegisterRoutes(games)
	gameHandler.RegisterRoutes(games, gates)

	return app, nil
}

// normalizeOrigins turns a comma separated list into the form fiber's cors
// middleware expects. A wildcard cannot be combined with credentials.
func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "*" {
			continue
		}
		origins = append(origins, p)
	}
	if len(origins) == 0 {
		return "http://localhost:5173"
	}
	return strings.Join(origins, ",")
}
