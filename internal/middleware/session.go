package middleware

import (
	"VoiceERP/internal/entity"
	jwtPkg "VoiceERP/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

// sessionMiddleware resolves the acting user for every request. A valid
// bearer token wins; without one the request runs as the configured default
// user, mirroring a single-operator deployment.
type sessionMiddleware struct {
	defaultUser entity.UserLoginData
}

func newSessionMiddleware(defaultUser entity.UserLoginData) *sessionMiddleware {
	return &sessionMiddleware{defaultUser: defaultUser}
}

func (m *middleware) NewSessionMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		ctx.Locals(jwtPkg.UserLoginDataKey, m.session.defaultUser)
		return ctx.Next()
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
			"path":  ctx.Path(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		m.log.WithFields(logrus.Fields{
			"error": "token claims are missing required fields",
			"path":  ctx.Path(),
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	ctx.Locals(jwtPkg.UserLoginDataKey, entity.UserLoginData{
		ID:       id,
		Username: username,
	})

	return ctx.Next()
}
