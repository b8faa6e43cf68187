package handlers

import (
	"fmt"

	"ludoteca/internal/middleware"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GameHandler handles HTTP requests for library entries.
type GameHandler struct {
	service *services.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service *services.GameService) *GameHandler {
	return &GameHandler{
		service: service,
	}
}

// RegisterRoutes registers the game routes on the /games group. Fiber
// matches in registration order, so fixed paths such as /games/buscar must
// be registered before these.
func (h *GameHandler) RegisterRoutes(games fiber.Router, gates middleware.Gates) {
	games.Get("/", gates.Optional, h.HandleListGames)
	games.Post("/", gates.Required, h.HandleCreateGame)
	games.Get("/:id", gates.Optional, h.HandleGetGame)
	games.Put("/:id", gates.Required, h.HandleUpdateGame)
	games.Delete("/:id", gates.Required, h.HandleDeleteGame)
}

// HandleListGames returns the caller's games, or every game for anonymous
// callers.
func (h *GameHandler) HandleListGames(c *fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)
	games, err := h.service.List(identity)
	if err != nil {
		return writeError(c, err, "Could not retrieve games")
	}
	return c.JSON(games)
}

// HandleGetGame returns a single game.
func (h *GameHandler) HandleGetGame(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return gameNotFound(c)
	}
	game, err := h.service.Get(id)
	if err != nil {
		return writeError(c, err, "Could not retrieve game")
	}
	return c.JSON(game)
}

// HandleCreateGame adds a game to the caller's library.
func (h *GameHandler) HandleCreateGame(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	var input services.GameInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}

	game, err := h.service.Create(*identity, input)
	if err != nil {
		return writeError(c, err, "Could not create game")
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleUpdateGame patches a game owned by the caller.
func (h *GameHandler) HandleUpdateGame(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}
	id, ok := parseID(c)
	if !ok {
		return gameNotFound(c)
	}

	var patch services.GamePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}

	game, err := h.service.Update(*identity, id, patch)
	if err != nil {
		return writeError(c, err, "Could not update game")
	}
	return c.JSON(game)
}

// HandleDeleteGame removes a game owned by the caller.
func (h *GameHandler) HandleDeleteGame(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}
	id, ok := parseID(c)
	if !ok {
		return gameNotFound(c)
	}

	if err := h.service.Delete(*identity, id); err != nil {
		return writeError(c, err, "Could not delete game")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Game %s deleted successfully", id),
	})
}

// parseID reads the :id path parameter as a UUID. Anything else cannot
// name a stored game.
func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func gameNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Game with ID %s not found", c.Params("id")),
	})
}
