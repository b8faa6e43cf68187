package models

import (
	"time"

	"github.com/google/uuid"
)

// Game represents a single entry in a user's library.
type Game struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Genre       string    `json:"genre" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Platform    string    `json:"platform" gorm:"type:varchar(100)" validate:"max=100"`
	Description string    `json:"description" gorm:"type:text" validate:"max=2000"`
	Image       string    `json:"image" gorm:"type:varchar(500)" validate:"omitempty,url,max=500"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	ReleaseDate string    `json:"releaseDate" gorm:"type:varchar(10)" validate:"omitempty,datetime=2006-01-02"`
	HoursPlayed int       `json:"hoursPlayed" validate:"gte=0"`
	Completed   bool      `json:"completed"`
	OwnerID     uuid.UUID `json:"owner" gorm:"type:varchar(36);index;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID owns g.
func (g *Game) OwnedBy(userID uuid.UUID) bool {
	return g.OwnerID == userID
}

// Game lifecycle event types.
const (
	GameCreated = "game.created"
	GameUpdated = "game.updated"
	GameDeleted = "game.deleted"
)

// GameEvent describes a change to a library entry.
type GameEvent struct {
	Type       string    `json:"type"`
	GameID     uuid.UUID `json:"gameId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}
