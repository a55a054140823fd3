package models

import (
	"time"

	"gorm.io/datatypes"
)

// ClientTargets stores the per-client macro corridor. Tolerances is a
// free-form map {kcal_pct, protein_pct, fat_pct, carbs_pct,
// min_g: {p, f, c}}; absent keys fall back to engine defaults.
type ClientTargets struct {
	ID             uint `gorm:"primaryKey"`
	ClientID       uint `gorm:"not null;uniqueIndex"`
	KcalTarget     int  `gorm:"not null;default:2000"`
	ProteinTargetG int  `gorm:"not null;default:100"`
	FatTargetG     int  `gorm:"not null;default:70"`
	CarbsTargetG   int  `gorm:"not null;default:250"`
	Tolerances     datatypes.JSONMap
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
