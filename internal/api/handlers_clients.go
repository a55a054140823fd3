package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/remardo/nutrios/internal/engine"
	"github.com/remardo/nutrios/internal/models"
)

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	clients, err := handler.repos.Clients.List()
	if err != nil {
		handler.logger.Error("client list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "client list failed"})
	}
	out := make([]fiber.Map, 0, len(clients))
	for _, client := range clients {
		out = append(out, fiber.Map{
			"id":                client.ID,
			"telegram_user_id":  client.TelegramUserID,
			"telegram_username": client.TelegramUsername,
		})
	}
	return c.JSON(out)
}

func (handler *Handler) ListClientMeals(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	meals, err := handler.repos.Meals.ListMealsForClientDesc(client.ID)
	if err != nil {
		handler.logger.Error("meal list failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "meal list failed"})
	}
	out := make([]fiber.Map, 0, len(meals))
	for _, meal := range meals {
		out = append(out, fiber.Map{
			"id":             meal.ID,
			"captured_at":    meal.CapturedAt,
			"title":          meal.Title,
			"portion_g":      meal.PortionG,
			"kcal":           meal.Kcal,
			"protein_g":      meal.ProteinG,
			"fat_g":          meal.FatG,
			"carbs_g":        meal.CarbsG,
			"flags":          meal.Flags,
			"micronutrients": meal.Micronutrients,
			"assumptions":    meal.Assumptions,
			"extras":         meal.Extras,
			"image_path":     meal.ImagePath,
			"source_type":    meal.SourceType,
			"message_id":     meal.MessageID,
		})
	}
	return c.JSON(out)
}

func (handler *Handler) DailySummary(c *fiber.Ctx) error {
	return handler.macroSummary(c, engine.FreqDaily)
}

func (handler *Handler) WeeklySummary(c *fiber.Ctx) error {
	return handler.macroSummary(c, engine.FreqWeekly)
}

func (handler *Handler) macroSummary(c *fiber.Ctx, freq string) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	meals, ok, err := handler.clientMeals(c, client)
	if !ok {
		return err
	}
	buckets := engine.MacroSummary(meals, handler.location, freq)
	out := make([]fiber.Map, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, fiber.Map{
			"period_start": bucket.PeriodStart.Format(dayLayout),
			"kcal":         bucket.Kcal,
			"protein_g":    bucket.ProteinG,
			"fat_g":        bucket.FatG,
			"carbs_g":      bucket.CarbsG,
		})
	}
	return c.JSON(out)
}

func (handler *Handler) MicronutrientSummary(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	meals, ok, err := handler.clientMeals(c, client)
	if !ok {
		return err
	}
	top := 10
	if raw := c.Query("top"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed > 0 {
			top = parsed
		}
	}
	counts := engine.MicronutrientTop(meals, top)
	out := make([]fiber.Map, 0, len(counts))
	for _, count := range counts {
		out = append(out, fiber.Map{"name": count.NameAmount, "count": count.Count})
	}
	return c.JSON(out)
}

func (handler *Handler) clientMeals(c *fiber.Ctx, client models.Client) ([]models.Meal, bool, error) {
	meals, err := handler.repos.Meals.ListMealsForClient(client.ID)
	if err != nil {
		handler.logger.Error("meal list failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "meal list failed"})
	}
	return meals, true, nil
}
