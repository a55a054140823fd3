package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type TargetsRepository struct {
	database *gorm.DB
}

func NewTargetsRepository(database *gorm.DB) *TargetsRepository {
	return &TargetsRepository{database: database}
}

func (repo *TargetsRepository) FindTargetsForClient(clientID uint) (models.ClientTargets, bool, error) {
	targets := models.ClientTargets{}
	result := repo.database.Where("client_id = ?", clientID).Limit(1).Find(&targets)
	if result.Error != nil {
		return models.ClientTargets{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ClientTargets{}, false, nil
	}
	return targets, true, nil
}

func (repo *TargetsRepository) Create(targets *models.ClientTargets) error {
	return repo.database.Create(targets).Error
}

func (repo *TargetsRepository) Save(targets *models.ClientTargets) error {
	return repo.database.Save(targets).Error
}
