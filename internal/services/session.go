package services

import (
	"errors"
	"fmt"

	"ludoteca/internal/repositories"

	"github.com/google/uuid"
)

// SessionState is the outcome of resolving a session token.
type SessionState int

const (
	SessionOK SessionState = iota
	SessionNoToken
	SessionInvalid
	SessionExpired
	SessionUserMissing
)

func (s SessionState) String() string {
	switch s {
	case SessionOK:
		return "ok"
	case SessionNoToken:
		return "no_token"
	case SessionInvalid:
		return "invalid"
	case SessionExpired:
		return "expired"
	case SessionUserMissing:
		return "user_missing"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// SessionResult is the tagged result of ResolveSession. Identity is set
// only when State is SessionOK.
type SessionResult struct {
	State    SessionState
	Identity *Identity
}

// ResolveSession verifies token and loads the user it refers to. The
// returned error is non-nil only for storage failures.
func (s *AuthService) ResolveSession(token string) (SessionResult, error) {
	if token == "" {
		return SessionResult{State: SessionNoToken}, nil
	}

	userID, err := s.tokens.Verify(token)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return SessionResult{State: SessionExpired}, nil
	case err != nil:
		return SessionResult{State: SessionInvalid}, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return SessionResult{State: SessionUserMissing}, nil
		}
		return SessionResult{}, fmt.Errorf("failed to load session user: %w", err)
	}

	return SessionResult{
		State: SessionOK,
		Identity: &Identity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
