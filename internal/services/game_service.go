package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ludoteca/internal/logging"
	"ludoteca/internal/models"
	"ludoteca/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EventPublisher receives game lifecycle events.
type EventPublisher interface {
	PublishGameEvent(event models.GameEvent) error
}

// GameService handles library entries and enforces ownership on mutation.
type GameService struct {
	repo     repositories.GameRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewGameService creates a new GameService. events may be nil.
func NewGameService(repo repositories.GameRepository, events EventPublisher) *GameService {
	return &GameService{
		repo:     repo,
		events:   events,
		validate: newValidator(),
	}
}

// GameInput is the request body for creating a game. Any owner sent by the
// client is ignored.
type GameInput struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Platform    string  `json:"platform"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"releaseDate"`
	HoursPlayed int     `json:"hoursPlayed"`
	Completed   bool    `json:"completed"`
}

// GamePatch is the request body for updating a game; nil fields are left
// unchanged.
type GamePatch struct {
	Title       *string  `json:"title"`
	Genre       *string  `json:"genre"`
	Platform    *string  `json:"platform"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"releaseDate"`
	HoursPlayed *int     `json:"hoursPlayed"`
	Completed   *bool    `json:"completed"`
}

func (p GamePatch) applyTo(g *models.Game) {
	if p.Title != nil {
		g.Title = strings.TrimSpace(*p.Title)
	}
	if p.Genre != nil {
		g.Genre = strings.TrimSpace(*p.Genre)
	}
	if p.Platform != nil {
		g.Platform = strings.TrimSpace(*p.Platform)
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Image != nil {
		g.Image = strings.TrimSpace(*p.Image)
	}
	if p.Rating != nil {
		g.Rating = *p.Rating
	}
	if p.ReleaseDate != nil {
		g.ReleaseDate = strings.TrimSpace(*p.ReleaseDate)
	}
	if p.HoursPlayed != nil {
		g.HoursPlayed = *p.HoursPlayed
	}
	if p.Completed != nil {
		g.Completed = *p.Completed
	}
}

// List returns the caller's games, or every game when caller is nil.
func (s *GameService) List(caller *Identity) ([]models.Game, error) {
	if caller == nil {
		return s.repo.GetAll()
	}
	return s.repo.GetByOwner(caller.ID)
}

// Get returns a single game.
func (s *GameService) Get(id uuid.UUID) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return game, nil
}

// Create stores a new game owned by caller.
func (s *GameService) Create(caller Identity, input GameInput) (*models.Game, error) {
	if caller.ID == uuid.Nil {
		return nil, invalid("owner is required")
	}
	game := &models.Game{
		Title:       strings.TrimSpace(input.Title),
		Genre:       strings.TrimSpace(input.Genre),
		Platform:    strings.TrimSpace(input.Platform),
		Description: input.Description,
		Image:       strings.TrimSpace(input.Image),
		Rating:      input.Rating,
		ReleaseDate: strings.TrimSpace(input.ReleaseDate),
		HoursPlayed: input.HoursPlayed,
		Completed:   input.Completed,
		OwnerID:     caller.ID,
	}
	if err := validateStruct(s.validate, game); err != nil {
		return nil, err
	}

	if err := s.repo.Create(game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	s.publish(models.GameCreated, game)
	return game, nil
}

// Update applies patch to a game owned by caller.
func (s *GameService) Update(caller Identity, id uuid.UUID, patch GamePatch) (*models.Game, error) {
	game, err := s.ownedGame(caller, id)
	if err != nil {
		return nil, err
	}

	patch.applyTo(game)
	if err := validateStruct(s.validate, game); err != nil {
		return nil, err
	}

	if err := s.repo.Update(game); err != nil {
		return nil, notFoundOr(err)
	}
	s.publish(models.GameUpdated, game)
	return game, nil
}

// Delete removes a game owned by caller.
func (s *GameService) Delete(caller Identity, id uuid.UUID) error {
	game, err := s.ownedGame(caller, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return notFoundOr(err)
	}
	s.publish(models.GameDeleted, game)
	return nil
}

// ownedGame loads id and checks that caller owns it.
func (s *GameService) ownedGame(caller Identity, id uuid.UUID) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !game.OwnedBy(caller.ID) {
		return nil, fmt.Errorf("game %s: %w", id, ErrForbidden)
	}
	return game, nil
}

func (s *GameService) publish(eventType string, game *models.Game) {
	if s.events == nil {
		return
	}
	event := models.GameEvent{
		Type:       eventType,
		GameID:     game.ID,
		OwnerID:    game.OwnerID,
		Title:      game.Title,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishGameEvent(event); err != nil {
		logging.Warn().Err(err).Str("event", eventType).Str("game_id", game.ID.String()).Msg("failed to publish game event")
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return err
}
