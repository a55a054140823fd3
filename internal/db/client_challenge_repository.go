package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type ClientChallengeRepository struct {
	database *gorm.DB
}

func NewClientChallengeRepository(database *gorm.DB) *ClientChallengeRepository {
	return &ClientChallengeRepository{database: database}
}

// ListChallengesForClient returns the client's challenges in the given
// statuses, newest start date first, with definitions preloaded.
func (repo *ClientChallengeRepository) ListChallengesForClient(clientID uint, statuses []string) ([]models.ClientChallenge, error) {
	challenges := make([]models.ClientChallenge, 0)
	query := repo.database.Preload("Definition").Where("client_id = ?", clientID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Order("start_date DESC, id DESC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ClientChallengeRepository) CreateChallenge(challenge *models.ClientChallenge) error {
	return repo.database.Omit("Definition").Create(challenge).Error
}

func (repo *ClientChallengeRepository) SaveChallenge(challenge *models.ClientChallenge) error {
	return repo.database.Omit("Definition").Save(challenge).Error
}
