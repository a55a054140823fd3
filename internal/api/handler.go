package api

import (
	"time"

	"go.uber.org/zap"

	"github.com/remardo/nutrios/internal/db"
	"github.com/remardo/nutrios/internal/engine"
)

// Handler carries the API dependencies: repositories, the engine
// services built on top of them, and the auth material.
type Handler struct {
	repos      *db.Repositories
	badges     *engine.BadgeService
	challenges *engine.ChallengeService
	habits     *engine.HabitService
	location   *time.Location
	logger     *zap.Logger

	secretKey   []byte
	adminAPIKey string
	tokenTTL    time.Duration
}

func NewHandler(repos *db.Repositories, location *time.Location, logger *zap.Logger, secretKey string, adminAPIKey string, tokenTTL time.Duration) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Handler{
		repos:      repos,
		badges:     engine.NewBadgeService(repos.Meals, repos.Targets, repos.BadgeAwards, location),
		challenges: engine.NewChallengeService(repos.Definitions, repos.Challenges, repos.Progress, repos.HabitLogs, repos.Meals, repos.Targets, location),
		habits:     engine.NewHabitService(repos.Meals, repos.HabitLogs, location),
		location:   location,
		logger:     logger,

		secretKey:   []byte(secretKey),
		adminAPIKey: adminAPIKey,
		tokenTTL:    tokenTTL,
	}
}
