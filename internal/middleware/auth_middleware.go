package middleware

import (
	"ludoteca/internal/logging"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	// TokenCookie is the cookie carrying the session token.
	TokenCookie = "token"
	// IdentityKey is the fiber Locals key holding *services.Identity.
	IdentityKey = "identity"
)

// SessionResolver turns a raw token into a session outcome.
type SessionResolver interface {
	ResolveSession(token string) (services.SessionResult, error)
}

// Gates bundles the three authentication policies over one resolver.
type Gates struct {
	Required fiber.Handler
	Optional fiber.Handler
	Probe    fiber.Handler
}

// NewGates builds all three gates for resolver.
func NewGates(resolver SessionResolver) Gates {
	return Gates{
		Required: AuthRequired(resolver),
		Optional: AuthOptional(resolver),
		Probe:    SessionProbe(resolver),
	}
}

// rejectReasons holds the 401 message for each failed session state.
var rejectReasons = map[services.SessionState]string{
	services.SessionNoToken:     "Not authorized: authentication token not provided",
	services.SessionInvalid:     "Invalid token",
	services.SessionExpired:     "Token expired, please log in again",
	services.SessionUserMissing: "Not authorized: user not found",
}

// AuthRequired rejects the request with 401 unless it carries a valid
// session for an existing user.
func AuthRequired(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := resolver.ResolveSession(c.Cookies(TokenCookie))
		if err != nil {
			logging.Error().Err(err).Str("path", c.Path()).Msg("session resolution failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not verify authentication",
			})
		}
		if result.State != services.SessionOK {
			logging.Debug().Str("state", result.State.String()).Str("path", c.Path()).Msg("request rejected by auth gate")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": rejectReasons[result.State],
			})
		}

		c.Locals(IdentityKey, result.Identity)
		return c.Next()
	}
}

// AuthOptional attaches the caller's identity when the session is valid and
// otherwise continues anonymously. It never blocks the request.
func AuthOptional(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := resolver.ResolveSession(c.Cookies(TokenCookie))
		if err != nil {
			logging.Warn().Err(err).Str("path", c.Path()).Msg("session resolution failed, continuing anonymously")
			return c.Next()
		}
		if result.State == services.SessionOK {
			c.Locals(IdentityKey, result.Identity)
		}
		return c.Next()
	}
}

// SessionProbe answers 200 {"authenticated": false} for any failed session
// and otherwise attaches the identity and continues.
func SessionProbe(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := resolver.ResolveSession(c.Cookies(TokenCookie))
		if err != nil {
			logging.Warn().Err(err).Msg("session probe failed")
		}
		if err != nil || result.State != services.SessionOK {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"authenticated": false,
			})
		}

		c.Locals(IdentityKey, result.Identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by a gate, if any.
func IdentityFrom(c *fiber.Ctx) (*services.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(*services.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
