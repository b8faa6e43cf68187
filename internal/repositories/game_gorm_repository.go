package repositories

import (
	"errors"
	"fmt"

	"ludoteca/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// GetAll retrieves every game from the database.
func (r *GORMGameRepository) GetAll() ([]models.Game, error) {
	games := []models.Game{}
	if err := r.db.Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get all games: %w", err)
	}
	return games, nil
}

// GetByOwner retrieves the games owned by a single user.
func (r *GORMGameRepository) GetByOwner(ownerID uuid.UUID) ([]models.Game, error) {
	games := []models.Game{}
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get games for owner %s: %w", ownerID, err)
	}
	return games, nil
}

// GetByID retrieves a single game by its ID from the database.
func (r *GORMGameRepository) GetByID(id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game with ID %s not found: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	return &game, nil
}

// Create creates a new game in the database.
func (r *GORMGameRepository) Create(game *models.Game) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	if err := r.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// Update writes every column of an existing game.
func (r *GORMGameRepository) Update(game *models.Game) error {
	res := r.db.Model(game).Select("*").Omit("id", "owner_id", "created_at").Updates(game)
	if res.Error != nil {
		return fmt.Errorf("failed to update game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("game with ID %s not found for update: %w", game.ID, ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a game by its ID from the database.
func (r *GORMGameRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Game{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("game with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}
