package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ludoteca/internal/middleware"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveSession(token string) (services.SessionResult, error) {
	args := m.Called(token)
	return args.Get(0).(services.SessionResult), args.Error(1)
}

var ana = &services.Identity{ID: uuid.New(), Name: "Ana", Email: "ana@x.com"}

// setupApp mounts each gate in front of a handler that echoes the attached
// identity.
func setupApp(resolver middleware.SessionResolver) *fiber.App {
	gates := middleware.NewGates(resolver)
	echo := func(c *fiber.Ctx) error {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"anonymous": false, "id": identity.ID.String()})
	}

	app := fiber.New()
	app.Get("/required", gates.Required, echo)
	app.Get("/optional", gates.Optional, echo)
	app.Get("/probe", gates.Probe, echo)
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestGates(t *testing.T) {
	cases := []struct {
		name          string
		token         string
		result        services.SessionResult
		err           error
		requiredCode  int
		requiredMsg   string
		authenticated bool
	}{
		{
			name:         "no token",
			result:       services.SessionResult{State: services.SessionNoToken},
			requiredCode: http.StatusUnauthorized,
			requiredMsg:  "Not authorized: authentication token not provided",
		},
		{
			name:         "invalid",
			token:        "garbage",
			result:       services.SessionResult{State: services.SessionInvalid},
			requiredCode: http.StatusUnauthorized,
			requiredMsg:  "Invalid token",
		},
		{
			name:         "expired",
			token:        "expired",
			result:       services.SessionResult{State: services.SessionExpired},
			requiredCode: http.StatusUnauthorized,
			requiredMsg:  "Token expired, please log in again",
		},
		{
			name:         "user missing",
			token:        "orphan",
			result:       services.SessionResult{State: services.SessionUserMissing},
			requiredCode: http.StatusUnauthorized,
			requiredMsg:  "Not authorized: user not found",
		},
		{
			name:         "storage failure",
			token:        "valid",
			err:          errors.New("database is down"),
			requiredCode: http.StatusInternalServerError,
			requiredMsg:  "Could not verify authentication",
		},
		{
			name:          "ok",
			token:         "valid",
			result:        services.SessionResult{State: services.SessionOK, Identity: ana},
			requiredCode:  http.StatusOK,
			authenticated: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := new(mockResolver)
			resolver.On("ResolveSession", tc.token).Return(tc.result, tc.err)
			app := setupApp(resolver)

			code, body := call(t, app, "/required", tc.token)
			assert.Equal(t, tc.requiredCode, code)
			if tc.authenticated {
				assert.Equal(t, ana.ID.String(), body["id"])
			} else {
				assert.Equal(t, tc.requiredMsg, body["message"])
			}

			code, body = call(t, app, "/optional", tc.token)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, !tc.authenticated, body["anonymous"])

			code, body = call(t, app, "/probe", tc.token)
			assert.Equal(t, http.StatusOK, code)
			if tc.authenticated {
				assert.Equal(t, ana.ID.String(), body["id"])
			} else {
				assert.Equal(t, map[string]interface{}{"authenticated": false}, body)
			}

			resolver.AssertNumberOfCalls(t, "ResolveSession", 3)
		})
	}
}

func TestIdentityFrom_Empty(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := middleware.IdentityFrom(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
