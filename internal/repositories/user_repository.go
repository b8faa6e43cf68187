package repositories

import (
	"ludoteca/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access.
// Emails are stored and matched in lowercase.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
}
