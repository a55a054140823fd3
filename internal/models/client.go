package models

import "time"

type Client struct {
	ID               uint   `gorm:"primaryKey"`
	TelegramUserID   int64  `gorm:"not null;uniqueIndex"`
	TelegramUsername string `gorm:"default:''"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
