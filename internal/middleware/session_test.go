package middleware

import (
	"VoiceERP/internal/entity"
	jwtPkg "VoiceERP/pkg/jwt"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := New(logger, entity.UserLoginData{ID: "01DEFAULTUSER", Username: "admin"})

	app := fiber.New()
	app.Get("/whoami", m.NewSessionMiddleware, func(ctx *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(ctx)
		if err != nil {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
		return ctx.JSON(user)
	})

	return app
}

func whoami(t *testing.T, app *fiber.App, token string) (*http.Response, entity.UserLoginData) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var user entity.UserLoginData
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	}

	return resp, user
}

func TestSessionMiddlewareFallsBackToDefaultUser(t *testing.T) {
	app := newSessionTestApp(t)

	resp, user := whoami(t, app, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "01DEFAULTUSER", user.ID)
	assert.Equal(t, "admin", user.Username)
}

func TestSessionMiddlewareSignedTokenWins(t *testing.T) {
	t.Setenv(AccessTokenSecret, "session-test-secret")
	app := newSessionTestApp(t)

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       "01SALESUSER",
		"username": "sales",
	}, time.Minute)
	require.NoError(t, err)

	resp, user := whoami(t, app, token)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "01SALESUSER", user.ID)
	assert.Equal(t, "sales", user.Username)
}

func TestSessionMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv(AccessTokenSecret, "session-test-secret")
	app := newSessionTestApp(t)

	resp, _ := whoami(t, app, "not-a-token")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddlewareRejectsTokenMissingClaims(t *testing.T) {
	t.Setenv(AccessTokenSecret, "session-test-secret")
	app := newSessionTestApp(t)

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "01SALESUSER"}, time.Minute)
	require.NoError(t, err)

	resp, _ := whoami(t, app, token)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
