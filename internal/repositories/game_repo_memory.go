package repositories

import (
	"fmt"
	"sync"
	"time"

	"ludoteca/internal/models"

	"github.com/google/uuid"
)

// MemoryGameRepository is an in-memory implementation of GameRepository.
type MemoryGameRepository struct {
	games map[uuid.UUID]models.Game
	order []uuid.UUID // insertion order, oldest first
	mu    sync.RWMutex
}

// NewMemoryGameRepository creates a new instance of MemoryGameRepository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[uuid.UUID]models.Game),
	}
}

// GetAll returns all games, newest first.
func (r *MemoryGameRepository) GetAll() ([]models.Game, error) {
	return r.collect(func(models.Game) bool { return true }), nil
}

// GetByOwner returns the games owned by ownerID, newest first.
func (r *MemoryGameRepository) GetByOwner(ownerID uuid.UUID) ([]models.Game, error) {
	return r.collect(func(g models.Game) bool { return g.OwnerID == ownerID }), nil
}

func (r *MemoryGameRepository) collect(keep func(models.Game) bool) []models.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]models.Game, 0, len(r.games))
	for i := len(r.order) - 1; i >= 0; i-- {
		game, ok := r.games[r.order[i]]
		if ok && keep(game) {
			games = append(games, game)
		}
	}
	return games
}

// GetByID returns a game by its ID.
func (r *MemoryGameRepository) GetByID(id uuid.UUID) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game with ID %s not found: %w", id, ErrRecordNotFound)
	}
	return &game, nil
}

// Create adds a new game.
func (r *MemoryGameRepository) Create(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	now := time.Now()
	game.CreatedAt = now
	game.UpdatedAt = now
	r.games[game.ID] = *game
	r.order = append(r.order, game.ID)
	return nil
}

// Update replaces an existing game, keeping its owner and creation time.
func (r *MemoryGameRepository) Update(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[game.ID]
	if !ok {
		return fmt.Errorf("game with ID %s not found for update: %w", game.ID, ErrRecordNotFound)
	}
	game.OwnerID = stored.OwnerID
	game.CreatedAt = stored.CreatedAt
	game.UpdatedAt = time.Now()
	r.games[game.ID] = *game
	return nil
}

// Delete removes a game by its ID.
func (r *MemoryGameRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("game with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	delete(r.games, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
