package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ChallengePeriodDaily   = "daily"
	ChallengePeriodWeekly  = "weekly"
	ChallengePeriodMonthly = "monthly"
)

const (
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
	ChallengeStatusFailed    = "failed"
	ChallengeStatusArchived  = "archived"
)

// ChallengeDefinition is one catalog entry. Config carries metric-specific
// parameters (baseline_days, default_target, daily_min, ...), free-form to
// keep the catalog re-seedable without schema changes.
type ChallengeDefinition struct {
	ID               uint   `gorm:"primaryKey"`
	Code             string `gorm:"not null;uniqueIndex"`
	Name             string `gorm:"not null"`
	Description      string
	Period           string `gorm:"not null"`
	Metric           string `gorm:"not null"`
	Config           datatypes.JSONMap
	DifficultyMinPct float64 `gorm:"not null;default:0.05"`
	DifficultyMaxPct float64 `gorm:"not null;default:0.15"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ClientChallenge is one assigned challenge instance anchored at a fixed
// [StartDate, EndDate] window. Terminal statuses: completed, failed,
// archived.
type ClientChallenge struct {
	ID                    uint      `gorm:"primaryKey"`
	ClientID              uint      `gorm:"not null;index"`
	ChallengeDefinitionID uint      `gorm:"not null;index"`
	Status                string    `gorm:"not null;default:active"`
	StartDate             time.Time `gorm:"type:date;not null"`
	EndDate               time.Time `gorm:"type:date;not null"`
	BaselineValue         float64
	TargetValue           float64
	DifficultyFactor      float64
	Meta                  datatypes.JSONMap
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Definition *ChallengeDefinition `gorm:"foreignKey:ChallengeDefinitionID"`
}

// ClientChallengeProgress is the single live progress row per assigned
// challenge, overwritten on every recomputation.
type ClientChallengeProgress struct {
	ID                uint `gorm:"primaryKey"`
	ClientChallengeID uint `gorm:"not null;uniqueIndex"`
	Value             float64
	TargetValue       float64
	Completed         bool      `gorm:"not null;default:false"`
	PeriodStart       time.Time `gorm:"type:date"`
	PeriodEnd         time.Time `gorm:"type:date"`
	Meta              datatypes.JSONMap
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
