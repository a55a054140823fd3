package db

import "gorm.io/gorm"

type Repositories struct {
	Clients     *ClientRepository
	Meals       *MealRepository
	Targets     *TargetsRepository
	Definitions *ChallengeDefinitionRepository
	Challenges  *ClientChallengeRepository
	Progress    *ChallengeProgressRepository
	BadgeAwards *BadgeAwardRepository
	HabitLogs   *HabitLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Clients:     NewClientRepository(database),
		Meals:       NewMealRepository(database),
		Targets:     NewTargetsRepository(database),
		Definitions: NewChallengeDefinitionRepository(database),
		Challenges:  NewClientChallengeRepository(database),
		Progress:    NewChallengeProgressRepository(database),
		BadgeAwards: NewBadgeAwardRepository(database),
		HabitLogs:   NewHabitLogRepository(database),
	}
}
