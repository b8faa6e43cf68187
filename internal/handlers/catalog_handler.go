package handlers

import (
	"net/url"

	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves read-only lookups against the external catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes under the /games group.
func (h *CatalogHandler) RegisterRoutes(games fiber.Router) {
	games.Get("/buscar/:name?", h.HandleSearch)
	games.Get("/catalogo/:category?", h.HandleBrowse)
}

// HandleSearch searches the catalog by name.
func (h *CatalogHandler) HandleSearch(c *fiber.Ctx) error {
	results, err := h.service.Search(c.UserContext(), pathParam(c, "name"))
	if err != nil {
		return writeError(c, err, "Could not search the catalog")
	}
	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}

// HandleBrowse lists one of the fixed catalog categories.
func (h *CatalogHandler) HandleBrowse(c *fiber.Ctx) error {
	category := pathParam(c, "category")
	results, err := h.service.Browse(c.UserContext(), category)
	if err != nil {
		return writeError(c, err, "Could not browse the catalog")
	}
	return c.JSON(fiber.Map{
		"category": category,
		"results":  results,
		"count":    len(results),
	})
}

func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
