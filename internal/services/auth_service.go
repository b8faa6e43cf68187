package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ludoteca/internal/models"
	"ludoteca/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and session resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenCodec
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenCodec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		validate: newValidator(),
	}
}

// RegisterInput is the request body for registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a user together with a freshly issued session token.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Register validates input, stores a new user with a hashed password and
// issues a session token for it.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	existing, err := s.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email '%s': %w", input.Email, ErrDuplicate)
	}

	user := &models.User{
		Name:  input.Name,
		Email: input.Email,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("email '%s': %w", input.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.issue(user)
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// burn a comparison so a missing account costs the same as a bad password
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(input.Password))
		return nil, ErrInvalidCredentials
	}
	if !s.VerifyPassword(user, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// FindByEmail returns the user registered under email, or nil if none is.
func (s *AuthService) FindByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// VerifyPassword reports whether raw is the password of user.
func (s *AuthService) VerifyPassword(user *models.User, raw string) bool {
	return user.CheckPassword(raw)
}

// GetUser returns the user with the given ID or ErrNotFound.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), models.PasswordHashCost)
	})
	return s.dummyHash
}
