package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MealSourceImage = "image"
	MealSourceText  = "text"
)

// Meal is one recognized food entry as ingested from the bot. Extras holds
// the nested nutrition breakdown produced by recognition:
// {fats: {total, saturated, mono, poly, trans, omega6, omega3},
//  fiber: {total, soluble, insoluble}, water_ml, vegetables_g, is_sweet}.
type Meal struct {
	ID             uint  `gorm:"primaryKey"`
	ClientID       uint  `gorm:"not null;index;uniqueIndex:uidx_client_message"`
	MessageID      int64 `gorm:"not null;uniqueIndex:uidx_client_message"`
	Title          string
	PortionG       int
	Confidence     int
	Kcal           int
	ProteinG       int
	FatG           int
	CarbsG         int
	Flags          datatypes.JSONMap
	Micronutrients []string `gorm:"serializer:json"`
	Assumptions    []string `gorm:"serializer:json"`
	Extras         datatypes.JSONMap
	SourceType     string
	ImagePath      string
	CapturedAt     time.Time `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
