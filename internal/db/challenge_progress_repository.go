package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type ChallengeProgressRepository struct {
	database *gorm.DB
}

func NewChallengeProgressRepository(database *gorm.DB) *ChallengeProgressRepository {
	return &ChallengeProgressRepository{database: database}
}

func (repo *ChallengeProgressRepository) FindProgressForChallenge(clientChallengeID uint) (models.ClientChallengeProgress, bool, error) {
	progress := models.ClientChallengeProgress{}
	result := repo.database.Where("client_challenge_id = ?", clientChallengeID).Limit(1).Find(&progress)
	if result.Error != nil {
		return models.ClientChallengeProgress{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ClientChallengeProgress{}, false, nil
	}
	return progress, true, nil
}

func (repo *ChallengeProgressRepository) CreateProgress(progress *models.ClientChallengeProgress) error {
	return repo.database.Create(progress).Error
}

func (repo *ChallengeProgressRepository) SaveProgress(progress *models.ClientChallengeProgress) error {
	return repo.database.Save(progress).Error
}
