package db

import (
	"github.com/remardo/nutrios/internal/models"
	"gorm.io/gorm"
)

type ChallengeDefinitionRepository struct {
	database *gorm.DB
}

func NewChallengeDefinitionRepository(database *gorm.DB) *ChallengeDefinitionRepository {
	return &ChallengeDefinitionRepository{database: database}
}

func (repo *ChallengeDefinitionRepository) ListDefinitions() ([]models.ChallengeDefinition, error) {
	definitions := make([]models.ChallengeDefinition, 0)
	if err := repo.database.Order("id ASC").Find(&definitions).Error; err != nil {
		return nil, err
	}
	return definitions, nil
}

func (repo *ChallengeDefinitionRepository) FindDefinitionByCode(code string) (models.ChallengeDefinition, bool, error) {
	definition := models.ChallengeDefinition{}
	result := repo.database.Where("code = ?", code).Limit(1).Find(&definition)
	if result.Error != nil {
		return models.ChallengeDefinition{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ChallengeDefinition{}, false, nil
	}
	return definition, true, nil
}

func (repo *ChallengeDefinitionRepository) FindDefinitionByID(id uint) (models.ChallengeDefinition, bool, error) {
	definition := models.ChallengeDefinition{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&definition)
	if result.Error != nil {
		return models.ChallengeDefinition{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ChallengeDefinition{}, false, nil
	}
	return definition, true, nil
}

func (repo *ChallengeDefinitionRepository) CreateDefinition(definition *models.ChallengeDefinition) error {
	return repo.database.Create(definition).Error
}

func (repo *ChallengeDefinitionRepository) SaveDefinition(definition *models.ChallengeDefinition) error {
	return repo.database.Save(definition).Error
}
