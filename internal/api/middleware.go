package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyHeader = "X-Api-Key"

type apiClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// AuthRequired accepts either the admin API key in X-Api-Key or a
// bearer token previously issued by IssueToken.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if key := strings.TrimSpace(c.Get(apiKeyHeader)); key != "" {
		if handler.apiKeyValid(key) {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
	}

	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if token, found := strings.CutPrefix(authorization, "Bearer "); found {
		if err := handler.verifyToken(strings.TrimSpace(token)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		return c.Next()
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing credentials"})
}

// apiKeyValid compares against the configured admin key. A key stored
// as a bcrypt hash ($2a$/$2b$ prefix) is compared with bcrypt, anything
// else byte for byte.
func (handler *Handler) apiKeyValid(candidate string) bool {
	configured := handler.adminAPIKey
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}
	return candidate == configured
}

func (handler *Handler) buildToken(now time.Time) (string, error) {
	claims := apiClaims{
		Scope: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(handler.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) verifyToken(rawToken string) error {
	claims := &apiClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return errors.New("token expired")
	}
	return nil
}
