package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/remardo/nutrios/internal/engine"
	"github.com/remardo/nutrios/internal/models"
)

func (handler *Handler) AvailableChallenges(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	options, err := handler.challenges.ListAvailableChallenges(client.ID)
	if err != nil {
		handler.logger.Error("challenge list failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "challenge list failed"})
	}
	return c.JSON(fiber.Map{"challenges": options})
}

type assignChallengeRequest struct {
	Code             string   `json:"code"`
	StartDate        string   `json:"start_date"`
	DifficultyFactor *float64 `json:"difficulty_factor"`
}

func (handler *Handler) AssignChallenge(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	var request assignChallengeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if request.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code is required"})
	}

	var start *time.Time
	if request.StartDate != "" {
		day, valid := handler.parseDayField(request.StartDate)
		if !valid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start_date"})
		}
		start = &day
	}

	challenge, err := handler.challenges.AssignChallenge(client.ID, request.Code, start, request.DifficultyFactor)
	if err != nil {
		if errors.Is(err, engine.ErrChallengeDefinitionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown challenge code"})
		}
		handler.logger.Error("challenge assign failed", zap.Uint("client_id", client.ID), zap.String("code", request.Code), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "challenge assign failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(serializeChallenge(challenge, nil))
}

func (handler *Handler) ActiveChallenges(c *fiber.Ctx) error {
	client, ok, err := handler.clientFromParams(c)
	if !ok {
		return err
	}
	rows, err := handler.challenges.ActiveChallengesWithProgress(client.ID)
	if err != nil {
		handler.logger.Error("active challenge list failed", zap.Uint("client_id", client.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "active challenge list failed"})
	}
	out := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		out = append(out, serializeChallenge(row.Challenge, &row.Progress))
	}
	return c.JSON(fiber.Map{"challenges": out})
}

func serializeChallenge(challenge models.ClientChallenge, progress *models.ClientChallengeProgress) fiber.Map {
	data := fiber.Map{
		"id":                challenge.ID,
		"status":            challenge.Status,
		"start_date":        challenge.StartDate.Format(dayLayout),
		"end_date":          challenge.EndDate.Format(dayLayout),
		"baseline_value":    challenge.BaselineValue,
		"target_value":      challenge.TargetValue,
		"difficulty_factor": challenge.DifficultyFactor,
		"meta":              challenge.Meta,
	}
	if challenge.Definition != nil {
		data["code"] = challenge.Definition.Code
		data["name"] = challenge.Definition.Name
		data["description"] = challenge.Definition.Description
		data["period"] = challenge.Definition.Period
	}
	if progress != nil {
		data["progress"] = fiber.Map{
			"value":        progress.Value,
			"target_value": progress.TargetValue,
			"completed":    progress.Completed,
			"period_start": progress.PeriodStart.Format(dayLayout),
			"period_end":   progress.PeriodEnd.Format(dayLayout),
			"meta":         progress.Meta,
		}
	}
	return data
}
