package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Post("/auth/token", handler.IssueToken)

	app.Post("/ingest/meal", handler.AuthRequired, handler.IngestMeal)

	clients := app.Group("/clients", handler.AuthRequired)
	clients.Get("", handler.ListClients)
	clients.Get("/:client_id/meals", handler.ListClientMeals)
	clients.Get("/:client_id/summary/daily", handler.DailySummary)
	clients.Get("/:client_id/summary/weekly", handler.WeeklySummary)
	clients.Get("/:client_id/micro/top", handler.MicronutrientSummary)

	clients.Get("/:client_id/badges", handler.EvaluateBadges)
	clients.Post("/:client_id/badges/refresh", handler.RefreshBadges)

	clients.Get("/:client_id/challenges/available", handler.AvailableChallenges)
	clients.Post("/:client_id/challenges/assign", handler.AssignChallenge)
	clients.Get("/:client_id/challenges/active", handler.ActiveChallenges)

	clients.Post("/:client_id/habits/recalc", handler.RecalcHabitLog)
	clients.Patch("/:client_id/habits/manual", handler.UpdateHabitLogManual)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
