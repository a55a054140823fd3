package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/remardo/nutrios/internal/models"
)

const dayLayout = "2006-01-02"

// clientFromParams resolves :client_id. When ok is false the response
// has already been written and the handler should return err as is.
func (handler *Handler) clientFromParams(c *fiber.Ctx) (client models.Client, ok bool, err error) {
	raw := c.Params("client_id")
	id, parseErr := strconv.ParseUint(raw, 10, 64)
	if parseErr != nil {
		return models.Client{}, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid client id"})
	}
	client, found, lookupErr := handler.repos.Clients.FindByID(uint(id))
	if lookupErr != nil {
		handler.logger.Error("client lookup failed", zap.Uint64("client_id", id), zap.Error(lookupErr))
		return models.Client{}, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "client lookup failed"})
	}
	if !found {
		return models.Client{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "client not found"})
	}
	return client, true, nil
}

// parseDayField parses an optional "YYYY-MM-DD" value in the reporting
// timezone, defaulting to today.
func (handler *Handler) parseDayField(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now().In(handler.location), true
	}
	day, err := time.ParseInLocation(dayLayout, raw, handler.location)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
