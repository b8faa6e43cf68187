package repositories

import (
	"ludoteca/internal/models"

	"github.com/google/uuid"
)

// GameRepository defines the interface for game data access.
// Listings are ordered most recently created first.
type GameRepository interface {
	GetAll() ([]models.Game, error)
	GetByOwner(ownerID uuid.UUID) ([]models.Game, error)
	GetByID(id uuid.UUID) (*models.Game, error)
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id uuid.UUID) error
}
