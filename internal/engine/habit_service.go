package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

type MealRangeReader interface {
	ListMealsBetween(clientID uint, from time.Time, to time.Time) ([]models.Meal, error)
}

type HabitLogStore interface {
	FindHabitLogForDay(clientID uint, day time.Time) (models.DailyHabitLog, bool, error)
	CreateHabitLog(log *models.DailyHabitLog) error
	SaveHabitLog(log *models.DailyHabitLog) error
}

// ManualHabitFields carries explicit overrides for a day's habit log. Nil
// fields stay untouched.
type ManualHabitFields struct {
	WaterML     *int
	VegetablesG *int
	HadSweets   *bool
	Steps       *int
}

var sweetTitleKeywords = []string{
	"торт", "десерт", "шоколад", "конфет", "печенье", "морожен", "пирожн",
	"cake", "dessert", "chocolate", "cookie", "candy", "sweet",
}

// HabitService merges automatically derived per-day values with manual
// overrides into one DailyHabitLog record.
type HabitService struct {
	meals    MealRangeReader
	logs     HabitLogStore
	location *time.Location
}

func NewHabitService(meals MealRangeReader, logs HabitLogStore, location *time.Location) *HabitService {
	return &HabitService{meals: meals, logs: logs, location: location}
}

// RecalcDailyLogFromMeals re-derives the automatic fields of the day's
// habit log from its meal records. Manual overrides stored under the
// "manual_*" extras keys keep precedence and are never overwritten here.
func (service *HabitService) RecalcDailyLogFromMeals(clientID uint, day time.Time) (models.DailyHabitLog, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	meals, err := service.meals.ListMealsBetween(clientID, dayStart, dayEnd)
	if err != nil {
		return models.DailyHabitLog{}, fmt.Errorf("load meals for client %d: %w", clientID, err)
	}

	autoWater := 0
	autoVegetables := 0
	autoSweets := false
	totalKcal := 0
	totalProtein := 0
	totalFat := 0
	totalCarbs := 0
	for _, meal := range meals {
		totalKcal += meal.Kcal
		totalProtein += meal.ProteinG
		totalFat += meal.FatG
		totalCarbs += meal.CarbsG
		autoWater += intValue(meal.Extras["water_ml"])
		autoVegetables += intValue(meal.Extras["vegetables_g"])
		autoSweets = autoSweets || mealLooksSweet(meal)
	}

	log, found, err := service.logs.FindHabitLogForDay(clientID, dayStart)
	if err != nil {
		return models.DailyHabitLog{}, fmt.Errorf("load habit log for client %d: %w", clientID, err)
	}
	if !found {
		log = models.DailyHabitLog{ClientID: clientID, Date: dayStart}
	}

	extras := log.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	sources, _ := extras["sources"].(map[string]any)
	if sources == nil {
		sources = map[string]any{}
	}
	sources["auto_water_ml"] = autoWater
	sources["auto_vegetables_g"] = autoVegetables
	extras["sources"] = sources
	extras["auto_had_sweets"] = autoSweets

	log.WaterML = autoWater
	if manual, ok := extras["manual_water_ml"]; ok {
		log.WaterML = intValue(manual)
	}
	log.VegetablesG = autoVegetables
	if manual, ok := extras["manual_vegetables_g"]; ok {
		log.VegetablesG = intValue(manual)
	}
	log.HadSweets = autoSweets
	if manual, ok := extras["manual_had_sweets"]; ok {
		log.HadSweets = boolValue(manual)
	}
	log.LoggedMeals = len(meals)
	log.TotalKcal = totalKcal
	log.ProteinG = totalProtein
	log.FatG = totalFat
	log.CarbsG = totalCarbs
	log.Extras = extras

	if found {
		err = service.logs.SaveHabitLog(&log)
	} else {
		err = service.logs.CreateHabitLog(&log)
	}
	if err != nil {
		return models.DailyHabitLog{}, fmt.Errorf("store habit log for client %d: %w", clientID, err)
	}
	return log, nil
}

// UpdateDailyLogManual records manual overrides and re-syncs the derived
// values. Overrides live in their own extras keys so a later automatic
// recalculation cannot discard them.
func (service *HabitService) UpdateDailyLogManual(clientID uint, day time.Time, fields ManualHabitFields) (models.DailyHabitLog, error) {
	dayStart := DayAtLocation(day, service.location)
	log, found, err := service.logs.FindHabitLogForDay(clientID, dayStart)
	if err != nil {
		return models.DailyHabitLog{}, fmt.Errorf("load habit log for client %d: %w", clientID, err)
	}
	if !found {
		log = models.DailyHabitLog{ClientID: clientID, Date: dayStart}
	}

	extras := log.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	if fields.WaterML != nil {
		extras["manual_water_ml"] = *fields.WaterML
	}
	if fields.VegetablesG != nil {
		extras["manual_vegetables_g"] = *fields.VegetablesG
	}
	if fields.HadSweets != nil {
		extras["manual_had_sweets"] = *fields.HadSweets
	}
	log.Extras = extras

	if found {
		err = service.logs.SaveHabitLog(&log)
	} else {
		err = service.logs.CreateHabitLog(&log)
	}
	if err != nil {
		return models.DailyHabitLog{}, fmt.Errorf("store habit log for client %d: %w", clientID, err)
	}

	log, err = service.RecalcDailyLogFromMeals(clientID, dayStart)
	if err != nil {
		return models.DailyHabitLog{}, err
	}

	if fields.Steps != nil {
		log.Steps = *fields.Steps
		if err := service.logs.SaveHabitLog(&log); err != nil {
			return models.DailyHabitLog{}, fmt.Errorf("store habit log for client %d: %w", clientID, err)
		}
	}
	return log, nil
}

// mealLooksSweet checks the explicit extras flags first, then falls back
// to a keyword match on the meal title.
func mealLooksSweet(meal models.Meal) bool {
	for _, key := range []string{"is_sweet", "had_sweets", "sweet"} {
		if raw, ok := meal.Extras[key]; ok && boolValue(raw) {
			return true
		}
	}
	title := strings.ToLower(meal.Title)
	for _, keyword := range sweetTitleKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}
