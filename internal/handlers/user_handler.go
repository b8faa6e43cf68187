package handlers

import (
	"time"

	"ludoteca/internal/middleware"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	// Secure marks the cookie HTTPS-only and relaxes SameSite to None for
	// cross-site frontends; otherwise SameSite is Lax.
	Secure bool
}

func (cc CookieConfig) sameSite() string {
	if cc.Secure {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	authService *services.AuthService
	cookies     CookieConfig
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, cookies CookieConfig) *UserHandler {
	return &UserHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// RegisterRoutes registers the account routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router, gates middleware.Gates) {
	users := router.Group("/users")
	users.Post("/register", h.HandleRegister)
	users.Post("/registro", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Post("/logout", gates.Required, h.HandleLogout)
	users.Get("/perfil", gates.Required, h.HandleProfile)
	users.Get("/verificar", gates.Probe, h.HandleSession)
}

// HandleRegister creates an account and starts a session for it.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}

	result, err := h.authService.Register(input)
	if err != nil {
		return writeError(c, err, "Could not register user")
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    result.User.View(),
	})
}

// HandleLogin checks credentials and starts a session.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return writeError(c, err, "Could not log in")
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    result.User.View(),
	})
}

// HandleLogout clears the session cookie. The token itself stays valid
// until it expires.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.sameSite(),
	})
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}

// HandleProfile returns the stored profile of the authenticated user.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	user, err := h.authService.GetUser(identity.ID)
	if err != nil {
		return writeError(c, err, "Could not load profile")
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          user.View(),
	})
}

// HandleSession reports the identity attached by the session probe.
func (h *UserHandler) HandleSession(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          identity,
	})
}

func (h *UserHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.TokenLifetime.Seconds()),
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.sameSite(),
	})
}
