package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type ClientRepository struct {
	database *gorm.DB
}

func NewClientRepository(database *gorm.DB) *ClientRepository {
	return &ClientRepository{database: database}
}

func (repo *ClientRepository) List() ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (repo *ClientRepository) FindByID(id uint) (models.Client, bool, error) {
	client := models.Client{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&client)
	if result.Error != nil {
		return models.Client{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Client{}, false, nil
	}
	return client, true, nil
}

func (repo *ClientRepository) FindByTelegramUserID(telegramUserID int64) (models.Client, bool, error) {
	client := models.Client{}
	result := repo.database.Where("telegram_user_id = ?", telegramUserID).Limit(1).Find(&client)
	if result.Error != nil {
		return models.Client{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Client{}, false, nil
	}
	return client, true, nil
}

func (repo *ClientRepository) Create(client *models.Client) error {
	return repo.database.Create(client).Error
}
