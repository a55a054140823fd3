package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) EvaluateBadges(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	statuses, err := handler.badges.EvaluateBadges(client.ID)
	if err != nil {
		handler.logger.Error("badge evaluation failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "badge evaluation failed"})
	}
	return c.JSON(fiber.Map{"badges": statuses})
}

func (handler *Handler) RefreshBadges(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	statuses, err := handler.badges.RefreshClientBadges(client.ID)
	if err != nil {
		handler.logger.Error("badge refresh failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "badge refresh failed"})
	}
	return c.JSON(fiber.Map{"badges": statuses})
}
