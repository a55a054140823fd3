package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/remardo/nutrios/internal/engine"
	"github.com/remardo/nutrios/internal/models"
)

type habitDayRequest struct {
	Date string `json:"date"`
}

func (handler *Handler) RecalcHabitLog(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	var request habitDayRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}
	day, valid := handler.parseDayField(request.Date)
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date"})
	}
	log, err := handler.habits.RecalcDailyLogFromMeals(client.ID, day)
	if err != nil {
		handler.logger.Error("habit recalc failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "habit recalc failed"})
	}
	return c.JSON(serializeHabitLog(log))
}

type manualHabitRequest struct {
	Date        string `json:"date"`
	WaterML     *int   `json:"water_ml"`
	VegetablesG *int   `json:"vegetables_g"`
	HadSweets   *bool  `json:"had_sweets"`
	Steps       *int   `json:"steps"`
}

func (handler *Handler) UpdateHabitLogManual(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	var request manualHabitRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	day, valid := handler.parseDayField(request.Date)
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date"})
	}
	fields := engine.ManualHabitFields{
		WaterML:     request.WaterML,
		VegetablesG: request.VegetablesG,
		HadSweets:   request.HadSweets,
		Steps:       request.Steps,
	}
	log, err := handler.habits.UpdateDailyLogManual(client.ID, day, fields)
	if err != nil {
		handler.logger.Error("habit manual update failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "habit manual update failed"})
	}
	return c.JSON(serializeHabitLog(log))
}

func serializeHabitLog(log models.DailyHabitLog) fiber.Map {
	return fiber.Map{
		"client_id":    log.ClientID,
		"date":         log.Date.Format(dayLayout),
		"water_ml":     log.WaterML,
		"vegetables_g": log.VegetablesG,
		"had_sweets":   log.HadSweets,
		"steps":        log.Steps,
		"logged_meals": log.LoggedMeals,
		"total_kcal":   log.TotalKcal,
		"protein_g":    log.ProteinG,
		"fat_g":        log.FatG,
		"carbs_g":      log.CarbsG,
		"extras":       log.Extras,
	}
}
