package models

import (
	"time"

	"gorm.io/datatypes"
)

// ClientBadgeAward deduplicates badge awards per (client, badge code).
// The row is updated in place on every refresh; LatestAwardAt moves only
// when the badge transitions into the earned state.
type ClientBadgeAward struct {
	ID            uint   `gorm:"primaryKey"`
	ClientID      uint   `gorm:"not null;uniqueIndex:uidx_client_badge"`
	BadgeCode     string `gorm:"not null;uniqueIndex:uidx_client_badge"`
	Earned        bool   `gorm:"not null;default:false"`
	Progress      float64
	Meta          datatypes.JSONMap
	FirstEarnedAt *time.Time
	LatestAwardAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
