package db

import (
	"time"

	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type MealRepository struct {
	database *gorm.DB
}

func NewMealRepository(database *gorm.DB) *MealRepository {
	return &MealRepository{database: database}
}

func (repo *MealRepository) ListMealsForClient(clientID uint) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("client_id = ?", clientID).
		Order("captured_at ASC, id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) ListMealsForClientDesc(clientID uint) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("client_id = ?", clientID).
		Order("captured_at DESC, id DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// ListMealsBetween returns the client's meals with captured_at in
// [from, to).
func (repo *MealRepository) ListMealsBetween(clientID uint, from time.Time, to time.Time) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("client_id = ? AND captured_at >= ? AND captured_at < ?", clientID, from, to).
		Order("captured_at ASC, id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) FindByClientAndMessage(clientID uint, messageID int64) (models.Meal, bool, error) {
	meal := models.Meal{}
	result := repo.database.
		Where("client_id = ? AND message_id = ?", clientID, messageID).
		Limit(1).
		Find(&meal)
	if result.Error != nil {
		return models.Meal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Meal{}, false, nil
	}
	return meal, true, nil
}

func (repo *MealRepository) Create(meal *models.Meal) error {
	return repo.database.Create(meal).Error
}

func (repo *MealRepository) Save(meal *models.Meal) error {
	return repo.database.Save(meal).Error
}
