package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type BadgeAwardRepository struct {
	database *gorm.DB
}

func NewBadgeAwardRepository(database *gorm.DB) *BadgeAwardRepository {
	return &BadgeAwardRepository{database: database}
}

func (repo *BadgeAwardRepository) ListAwardsForClient(clientID uint) ([]models.ClientBadgeAward, error) {
	awards := make([]models.ClientBadgeAward, 0)
	if err := repo.database.
		Where("client_id = ?", clientID).
		Order("badge_code ASC").
		Find(&awards).Error; err != nil {
		return nil, err
	}
	return awards, nil
}

func (repo *BadgeAwardRepository) Create(award *models.ClientBadgeAward) error {
	return repo.database.Create(award).Error
}

func (repo *BadgeAwardRepository) Save(award *models.ClientBadgeAward) error {
	return repo.database.Save(award).Error
}
