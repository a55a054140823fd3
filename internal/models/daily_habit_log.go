package models

import (
	"time"

	"gorm.io/datatypes"
)

// DailyHabitLog is the per-day habit record consumed by the challenge
// engine. Automatic fields are recomputed from meals on every ingestion;
// manual overrides live under Extras ("manual_*" keys) and win over the
// automatic values for the same field.
type DailyHabitLog struct {
	ID          uint      `gorm:"primaryKey"`
	ClientID    uint      `gorm:"not null;uniqueIndex:uidx_client_day"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_client_day"`
	WaterML     int
	VegetablesG int
	HadSweets   bool `gorm:"not null;default:false"`
	Steps       int
	LoggedMeals int
	TotalKcal   int
	ProteinG    int
	FatG        int
	CarbsG      int
	Extras      datatypes.JSONMap
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
