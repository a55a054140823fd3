package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/remardo/nutrios/internal/engine"
	"github.com/remardo/nutrios/internal/models"
)

type ingestMealRequest struct {
	TelegramUserID   int64          `json:"telegram_user_id"`
	TelegramUsername string         `json:"telegram_username"`
	CapturedAtISO    string         `json:"captured_at_iso"`
	Title            string         `json:"title"`
	PortionG         int            `json:"portion_g"`
	Confidence       int            `json:"confidence"`
	Kcal             int            `json:"kcal"`
	ProteinG         int            `json:"protein_g"`
	FatG             int            `json:"fat_g"`
	CarbsG           int            `json:"carbs_g"`
	Flags            map[string]any `json:"flags"`
	Micronutrients   []string       `json:"micronutrients"`
	Assumptions      []string       `json:"assumptions"`
	Extras           map[string]any `json:"extras"`
	SourceType       string         `json:"source_type"`
	ImagePath        string         `json:"image_path"`
	MessageID        int64          `json:"message_id"`
}

// IngestMeal upserts a recognized meal by (client, message) and
// re-derives the habit log for the meal's day. The client row is
// created on first contact.
func (handler *Handler) IngestMeal(c *fiber.Ctx) error {
	var request ingestMealRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if request.TelegramUserID == 0 || request.MessageID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "telegram_user_id and message_id are required"})
	}
	capturedAt, err := time.Parse(time.RFC3339, request.CapturedAtISO)
	if err != nil {
		capturedAt, err = time.ParseInLocation("2006-01-02T15:04:05", request.CapturedAtISO, handler.location)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid captured_at_iso"})
		}
	}

	client, found, err := handler.repos.Clients.FindByTelegramUserID(request.TelegramUserID)
	if err != nil {
		handler.logger.Error("client lookup failed", zap.Int64("telegram_user_id", request.TelegramUserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "client lookup failed"})
	}
	if !found {
		client = models.Client{
			TelegramUserID:   request.TelegramUserID,
			TelegramUsername: request.TelegramUsername,
		}
		if err := handler.repos.Clients.Create(&client); err != nil {
			handler.logger.Error("client create failed", zap.Int64("telegram_user_id", request.TelegramUserID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "client create failed"})
		}
	}

	meal, exists, err := handler.repos.Meals.FindByClientAndMessage(client.ID, request.MessageID)
	if err != nil {
		handler.logger.Error("meal lookup failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "meal lookup failed"})
	}
	if !exists {
		meal = models.Meal{ClientID: client.ID, MessageID: request.MessageID}
	}
	meal.Title = request.Title
	meal.PortionG = request.PortionG
	meal.Confidence = request.Confidence
	meal.Kcal = request.Kcal
	meal.ProteinG = request.ProteinG
	meal.FatG = request.FatG
	meal.CarbsG = request.CarbsG
	meal.Flags = datatypes.JSONMap(request.Flags)
	meal.Micronutrients = request.Micronutrients
	meal.Assumptions = request.Assumptions
	meal.Extras = datatypes.JSONMap(request.Extras)
	meal.SourceType = request.SourceType
	meal.ImagePath = request.ImagePath
	meal.CapturedAt = capturedAt

	if exists {
		err = handler.repos.Meals.Save(&meal)
	} else {
		err = handler.repos.Meals.Create(&meal)
	}
	if err != nil {
		handler.logger.Error("meal store failed", zap.Uint("client_id", client.ID), zap.Int64("message_id", request.MessageID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "meal store failed"})
	}

	day := engine.DayAtLocation(capturedAt, handler.location)
	if _, err := handler.habits.RecalcDailyLogFromMeals(client.ID, day); err != nil {
		handler.logger.Warn("habit log resync failed", zap.Uint("client_id", client.ID), zap.Error(err))
	}

	return c.JSON(fiber.Map{"ok": true, "meal_id": meal.ID, "client_id": client.ID})
}
