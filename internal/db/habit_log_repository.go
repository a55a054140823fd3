package db

import (
	"time"

	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type HabitLogRepository struct {
	database *gorm.DB
}

func NewHabitLogRepository(database *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{database: database}
}

// ListHabitLogsBetween returns logs with from <= date <= to, oldest first.
func (repo *HabitLogRepository) ListHabitLogsBetween(clientID uint, from time.Time, to time.Time) ([]models.DailyHabitLog, error) {
	logs := make([]models.DailyHabitLog, 0)
	if err := repo.database.
		Where("client_id = ? AND date >= ? AND date <= ?", clientID, from, to).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *HabitLogRepository) FindHabitLogForDay(clientID uint, day time.Time) (models.DailyHabitLog, bool, error) {
	var log models.DailyHabitLog
	result := repo.database.
		Where("client_id = ? AND date = ?", clientID, day).
		Limit(1).
		Find(&log)
	if result.Error != nil {
		return models.DailyHabitLog{}, false, result.Error
	}
	return log, result.RowsAffected > 0, nil
}

func (repo *HabitLogRepository) CreateHabitLog(log *models.DailyHabitLog) error {
	return repo.database.Create(log).Error
}

func (repo *HabitLogRepository) SaveHabitLog(log *models.DailyHabitLog) error {
	return repo.database.Save(log).Error
}
