package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// IssueToken exchanges the admin API key for a short-lived bearer
// token. The key may come from the request body or the usual header.
func (handler *Handler) IssueToken(c *fiber.Ctx) error {
	var request tokenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}
	key := strings.TrimSpace(request.APIKey)
	if key == "" {
		key = strings.TrimSpace(c.Get(apiKeyHeader))
	}
	if !handler.apiKeyValid(key) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
	}

	token, err := handler.buildToken(time.Now())
	if err != nil {
		handler.logger.Error("token build failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "token build failed"})
	}
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(handler.tokenTTL.Seconds()),
	})
}
