package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

var ErrChallengeDefinitionNotFound = errors.New("challenge definition not found")

type ChallengeDefinitionStore interface {
	ListDefinitions() ([]models.ChallengeDefinition, error)
	FindDefinitionByCode(code string) (models.ChallengeDefinition, bool, error)
	FindDefinitionByID(id uint) (models.ChallengeDefinition, bool, error)
	CreateDefinition(definition *models.ChallengeDefinition) error
	SaveDefinition(definition *models.ChallengeDefinition) error
}

type ClientChallengeStore interface {
	ListChallengesForClient(clientID uint, statuses []string) ([]models.ClientChallenge, error)
	CreateChallenge(challenge *models.ClientChallenge) error
	SaveChallenge(challenge *models.ClientChallenge) error
}

type ChallengeProgressStore interface {
	FindProgressForChallenge(clientChallengeID uint) (models.ClientChallengeProgress, bool, error)
	CreateProgress(progress *models.ClientChallengeProgress) error
	SaveProgress(progress *models.ClientChallengeProgress) error
}

type HabitLogReader interface {
	ListHabitLogsBetween(clientID uint, from time.Time, to time.Time) ([]models.DailyHabitLog, error)
}

// AvailableChallenge previews one catalog entry for a client: its
// suggested personalized target next to the historical baseline.
type AvailableChallenge struct {
	Code              string         `json:"code"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Period            string         `json:"period"`
	Metric            string         `json:"metric"`
	AlreadyActive     bool           `json:"already_active"`
	SuggestedBaseline float64        `json:"suggested_baseline"`
	SuggestedTarget   float64        `json:"suggested_target"`
	DifficultyFactor  float64        `json:"difficulty_factor"`
	Meta              map[string]any `json:"meta"`
}

type ChallengeWithProgress struct {
	Challenge models.ClientChallenge
	Progress  models.ClientChallengeProgress
}

// ChallengeService owns the challenge lifecycle: catalog seeding, baseline
// and target computation, assignment and progress recomputation.
type ChallengeService struct {
	definitions ChallengeDefinitionStore
	challenges  ClientChallengeStore
	progress    ChallengeProgressStore
	habits      HabitLogReader
	meals       BadgeMealReader
	targets     TargetsReader
	location    *time.Location
	now         func() time.Time
}

func NewChallengeService(
	definitions ChallengeDefinitionStore,
	challenges ClientChallengeStore,
	progress ChallengeProgressStore,
	habits HabitLogReader,
	meals BadgeMealReader,
	targets TargetsReader,
	location *time.Location,
) *ChallengeService {
	return &ChallengeService{
		definitions: definitions,
		challenges:  challenges,
		progress:    progress,
		habits:      habits,
		meals:       meals,
		targets:     targets,
		location:    location,
		now:         time.Now,
	}
}

// EnsureDefaultDefinitions seeds the static catalog. Existing rows are
// updated by code, never duplicated; the call is safe to repeat.
func (service *ChallengeService) EnsureDefaultDefinitions() ([]models.ChallengeDefinition, error) {
	seeded := make([]models.ChallengeDefinition, 0, len(challengeCatalog))
	for _, item := range challengeCatalog {
		existing, found, err := service.definitions.FindDefinitionByCode(item.Code)
		if err != nil {
			return nil, fmt.Errorf("find challenge definition %s: %w", item.Code, err)
		}
		if !found {
			created := item
			created.DifficultyMinPct = defaultDifficultyMin
			created.DifficultyMaxPct = defaultDifficultyMax
			if err := service.definitions.CreateDefinition(&created); err != nil {
				return nil, fmt.Errorf("create challenge definition %s: %w", item.Code, err)
			}
			seeded = append(seeded, created)
			continue
		}
		existing.Name = item.Name
		existing.Description = item.Description
		existing.Period = item.Period
		existing.Metric = item.Metric
		existing.Config = item.Config
		if err := service.definitions.SaveDefinition(&existing); err != nil {
			return nil, fmt.Errorf("update challenge definition %s: %w", item.Code, err)
		}
		seeded = append(seeded, existing)
	}
	return seeded, nil
}

// ListAvailableChallenges previews every catalog entry for the client with
// a suggested baseline, target and the default difficulty factor.
func (service *ChallengeService) ListAvailableChallenges(clientID uint) ([]AvailableChallenge, error) {
	if _, err := service.EnsureDefaultDefinitions(); err != nil {
		return nil, err
	}

	active, err := service.challenges.ListChallengesForClient(clientID, []string{models.ChallengeStatusActive})
	if err != nil {
		return nil, fmt.Errorf("list active challenges for client %d: %w", clientID, err)
	}
	activeCodes := make(map[string]bool, len(active))
	for _, challenge := range active {
		if challenge.Definition != nil {
			activeCodes[challenge.Definition.Code] = true
		}
	}

	definitions, err := service.definitions.ListDefinitions()
	if err != nil {
		return nil, fmt.Errorf("list challenge definitions: %w", err)
	}

	options := make([]AvailableChallenge, 0, len(definitions))
	for _, definition := range definitions {
		baseline, err := service.baselineForChallenge(clientID, definition)
		if err != nil {
			return nil, err
		}
		factor := DifficultyFactor(definition, nil)
		target, meta := TargetForChallenge(definition, baseline, factor)
		options = append(options, AvailableChallenge{
			Code:              definition.Code,
			Name:              definition.Name,
			Description:       definition.Description,
			Period:            definition.Period,
			Metric:            definition.Metric,
			AlreadyActive:     activeCodes[definition.Code],
			SuggestedBaseline: baseline,
			SuggestedTarget:   target,
			DifficultyFactor:  factor,
			Meta:              meta,
		})
	}
	return options, nil
}

// AssignChallenge creates a challenge instance anchored at the fixed
// period window and immediately recomputes its progress once.
func (service *ChallengeService) AssignChallenge(clientID uint, code string, start *time.Time, factorOverride *float64) (models.ClientChallenge, error) {
	definition, found, err := service.definitions.FindDefinitionByCode(code)
	if err != nil {
		return models.ClientChallenge{}, fmt.Errorf("find challenge definition %s: %w", code, err)
	}
	if !found {
		return models.ClientChallenge{}, fmt.Errorf("%w: %s", ErrChallengeDefinitionNotFound, code)
	}

	startDay := DayAtLocation(service.now(), service.location)
	if start != nil {
		startDay = DayAtLocation(*start, service.location)
	}
	endDay := startDay.AddDate(0, 0, PeriodLengthDays(definition.Period)-1)

	baseline, err := service.baselineForChallenge(clientID, definition)
	if err != nil {
		return models.ClientChallenge{}, err
	}
	factor := DifficultyFactor(definition, factorOverride)
	target, meta := TargetForChallenge(definition, baseline, factor)

	challenge := models.ClientChallenge{
		ClientID:              clientID,
		ChallengeDefinitionID: definition.ID,
		Status:                models.ChallengeStatusActive,
		StartDate:             startDay,
		EndDate:               endDay,
		BaselineValue:         baseline,
		TargetValue:           target,
		DifficultyFactor:      factor,
		Meta:                  meta,
		Definition:            &definition,
	}
	if err := service.challenges.CreateChallenge(&challenge); err != nil {
		return models.ClientChallenge{}, fmt.Errorf("create client challenge %s: %w", code, err)
	}
	if _, err := service.RecalculateProgress(&challenge); err != nil {
		return models.ClientChallenge{}, err
	}
	return challenge, nil
}

// ActiveChallengesWithProgress recomputes progress for every active and
// completed instance before returning them, newest first.
func (service *ChallengeService) ActiveChallengesWithProgress(clientID uint) ([]ChallengeWithProgress, error) {
	rows, err := service.challenges.ListChallengesForClient(clientID, []string{
		models.ChallengeStatusActive,
		models.ChallengeStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("list challenges for client %d: %w", clientID, err)
	}

	result := make([]ChallengeWithProgress, 0, len(rows))
	for index := range rows {
		progress, err := service.RecalculateProgress(&rows[index])
		if err != nil {
			return nil, err
		}
		result = append(result, ChallengeWithProgress{Challenge: rows[index], Progress: progress})
	}
	return result, nil
}

// RecalculateProgress recomputes the metric value over the instance's
// fixed date window, overwrites the live progress row and moves the
// challenge status. Idempotent over unchanged data.
func (service *ChallengeService) RecalculateProgress(challenge *models.ClientChallenge) (models.ClientChallengeProgress, error) {
	definition, err := service.resolveDefinition(challenge)
	if err != nil {
		return models.ClientChallengeProgress{}, err
	}

	start := DayAtLocation(challenge.StartDate, service.location)
	end := DayAtLocation(challenge.EndDate, service.location)
	logs, err := service.habits.ListHabitLogsBetween(challenge.ClientID, start, end)
	if err != nil {
		return models.ClientChallengeProgress{}, fmt.Errorf("load habit logs for challenge %d: %w", challenge.ID, err)
	}
	logsByDay := indexHabitLogs(logs, service.location)

	cfg := map[string]any(definition.Config)
	value := 0.0
	meta := map[string]any{}

	switch definition.Code {
	case ChallengeWaterDaily:
		if log, found := logsByDay[dayKey(start, service.location)]; found {
			value = float64(log.WaterML)
		}
		meta["unit"] = cfgString(cfg, "unit", "мл")

	case ChallengeLogMealsDaily:
		if log, found := logsByDay[dayKey(start, service.location)]; found {
			value = float64(log.LoggedMeals)
		}
		meta["unit"] = cfgString(cfg, "unit", "шт.")

	case ChallengeProteinWeekly:
		targets, err := service.storedTargets(challenge.ClientID)
		if err != nil {
			return models.ClientChallengeProgress{}, err
		}
		successDays, totalDays := proteinSuccessDays(logsByDay, targets, cfgFloat(cfg, "tolerance_pct", 0.2), start, end)
		value = float64(successDays)
		meta["total_days"] = totalDays
		meta["unit"] = cfgString(cfg, "unit", "дней")

	case ChallengeNoSweetsWeekly:
		value = float64(countSweetFreeDays(logs))
		meta["unit"] = cfgString(cfg, "unit", "дней")

	case ChallengeVegetables:
		requirement := cfgFloat(challenge.Meta, "daily_requirement", cfgFloat(cfg, "daily_min", 400))
		value = float64(countDaysAtOrAbove(logs, habitVegetables, requirement))
		meta["daily_requirement"] = requirement
		meta["unit"] = cfgString(cfg, "unit", "дней")

	case ChallengeStreak2130:
		days, err := service.complianceDays(challenge.ClientID, start, end)
		if err != nil {
			return models.ClientChallengeProgress{}, err
		}
		value = float64(days)
		meta["unit"] = cfgString(cfg, "unit", "дней")
		meta["window_days"] = cfgFloat(cfg, "window_days", 30)

	case ChallengeSteps10k:
		threshold := cfgFloat(challenge.Meta, "daily_steps_target", cfgFloat(cfg, "daily_target", 10000))
		value = float64(countDaysAtOrAbove(logs, habitSteps, threshold))
		meta["daily_steps_target"] = threshold
		meta["unit"] = cfgString(cfg, "unit", "дней")
	}

	completed := value >= challenge.TargetValue

	progress, found, err := service.progress.FindProgressForChallenge(challenge.ID)
	if err != nil {
		return models.ClientChallengeProgress{}, fmt.Errorf("load progress for challenge %d: %w", challenge.ID, err)
	}
	progress.ClientChallengeID = challenge.ID
	progress.Value = value
	progress.TargetValue = challenge.TargetValue
	progress.Completed = completed
	progress.PeriodStart = challenge.StartDate
	progress.PeriodEnd = challenge.EndDate
	progress.Meta = meta
	if found {
		err = service.progress.SaveProgress(&progress)
	} else {
		err = service.progress.CreateProgress(&progress)
	}
	if err != nil {
		return models.ClientChallengeProgress{}, fmt.Errorf("store progress for challenge %d: %w", challenge.ID, err)
	}

	today := DayAtLocation(service.now(), service.location)
	previousStatus := challenge.Status
	switch {
	case completed:
		challenge.Status = models.ChallengeStatusCompleted
	case today.After(end):
		challenge.Status = models.ChallengeStatusFailed
	case challenge.Status == "":
		challenge.Status = models.ChallengeStatusActive
	}
	if challenge.Status != previousStatus {
		if err := service.challenges.SaveChallenge(challenge); err != nil {
			return models.ClientChallengeProgress{}, fmt.Errorf("update challenge %d status: %w", challenge.ID, err)
		}
	}
	return progress, nil
}

func (service *ChallengeService) resolveDefinition(challenge *models.ClientChallenge) (models.ChallengeDefinition, error) {
	if challenge.Definition != nil {
		return *challenge.Definition, nil
	}
	definition, found, err := service.definitions.FindDefinitionByID(challenge.ChallengeDefinitionID)
	if err != nil {
		return models.ChallengeDefinition{}, fmt.Errorf("find challenge definition %d: %w", challenge.ChallengeDefinitionID, err)
	}
	if !found {
		return models.ChallengeDefinition{}, fmt.Errorf("%w: id %d", ErrChallengeDefinitionNotFound, challenge.ChallengeDefinitionID)
	}
	challenge.Definition = &definition
	return definition, nil
}

func (service *ChallengeService) storedTargets(clientID uint) (*Targets, error) {
	row, found, err := service.targets.FindTargetsForClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("load targets for client %d: %w", clientID, err)
	}
	if !found {
		return nil, nil
	}
	converted := TargetsFromModel(row)
	return &converted, nil
}

func (service *ChallengeService) complianceDays(clientID uint, start time.Time, end time.Time) (int, error) {
	targets, err := service.storedTargets(clientID)
	if err != nil {
		return 0, err
	}
	meals, err := service.meals.ListMealsForClient(clientID)
	if err != nil {
		return 0, fmt.Errorf("load meals for client %d: %w", clientID, err)
	}
	dailyMacros := DailyMacrosFromMeals(meals, service.location)
	return complianceDaysInRange(dailyMacros, targets, start, end), nil
}

func (service *ChallengeService) baselineForChallenge(clientID uint, definition models.ChallengeDefinition) (float64, error) {
	cfg := map[string]any(definition.Config)
	today := DayAtLocation(service.now(), service.location)
	yesterday := today.AddDate(0, 0, -1)

	switch definition.Code {
	case ChallengeWaterDaily:
		lookback := int(cfgFloat(cfg, "baseline_days", 14))
		logs, err := service.habits.ListHabitLogsBetween(clientID, today.AddDate(0, 0, -lookback), yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		values := make([]float64, 0, len(logs))
		for _, log := range logs {
			if log.WaterML > 0 {
				values = append(values, float64(log.WaterML))
			}
		}
		return averageFloats(values), nil

	case ChallengeLogMealsDaily:
		lookback := int(cfgFloat(cfg, "baseline_days", 14))
		logs, err := service.habits.ListHabitLogsBetween(clientID, today.AddDate(0, 0, -lookback), yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		values := make([]float64, 0, len(logs))
		for _, log := range logs {
			if log.LoggedMeals > 0 {
				values = append(values, float64(log.LoggedMeals))
			}
		}
		return averageFloats(values), nil

	case ChallengeProteinWeekly:
		weeks := int(cfgFloat(cfg, "baseline_weeks", 4))
		start := today.AddDate(0, 0, -7*weeks)
		logs, err := service.habits.ListHabitLogsBetween(clientID, start, yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		logsByDay := indexHabitLogs(logs, service.location)
		targets, err := service.storedTargets(clientID)
		if err != nil {
			return 0, err
		}
		tolerance := cfgFloat(cfg, "tolerance_pct", 0.2)

		totalSuccess := 0
		weeksSeen := 0
		for cursor := start; cursor.Before(today); {
			weekEnd := cursor.AddDate(0, 0, 6)
			if weekEnd.After(today) {
				weekEnd = today
			}
			success, total := proteinSuccessDays(logsByDay, targets, tolerance, cursor, weekEnd)
			if total > 0 {
				totalSuccess += success
				weeksSeen++
			}
			cursor = weekEnd.AddDate(0, 0, 1)
		}
		if weeksSeen == 0 {
			return 0, nil
		}
		return float64(totalSuccess) / float64(weeksSeen), nil

	case ChallengeNoSweetsWeekly:
		weeks := int(cfgFloat(cfg, "baseline_weeks", 4))
		logs, err := service.habits.ListHabitLogsBetween(clientID, today.AddDate(0, 0, -7*weeks), yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		if len(logs) == 0 {
			return 0, nil
		}
		counts := make([]float64, 0)
		for _, chunk := range chunkHabitLogs(logs, 7) {
			counts = append(counts, float64(countSweetFreeDays(chunk)))
		}
		return averageFloats(counts), nil

	case ChallengeVegetables:
		weeks := int(cfgFloat(cfg, "baseline_weeks", 4))
		logs, err := service.habits.ListHabitLogsBetween(clientID, today.AddDate(0, 0, -7*weeks), yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		if len(logs) == 0 {
			return 0, nil
		}
		dailyMin := cfgFloat(cfg, "daily_min", 400)
		counts := make([]float64, 0)
		for _, chunk := range chunkHabitLogs(logs, 7) {
			counts = append(counts, float64(countDaysAtOrAbove(chunk, habitVegetables, dailyMin)))
		}
		return averageFloats(counts), nil

	case ChallengeStreak2130:
		window := int(cfgFloat(cfg, "window_days", 30))
		days, err := service.complianceDays(clientID, today.AddDate(0, 0, -window), today)
		if err != nil {
			return 0, err
		}
		return float64(days), nil

	case ChallengeSteps10k:
		lookback := int(cfgFloat(cfg, "baseline_days", 30))
		logs, err := service.habits.ListHabitLogsBetween(clientID, today.AddDate(0, 0, -lookback), yesterday)
		if err != nil {
			return 0, fmt.Errorf("load habit logs for client %d: %w", clientID, err)
		}
		return float64(countDaysAtOrAbove(logs, habitSteps, cfgFloat(cfg, "daily_target", 10000))), nil
	}

	return 0, nil
}

func dayKey(value time.Time, location *time.Location) string {
	return DayAtLocation(value, location).Format("2006-01-02")
}

func indexHabitLogs(logs []models.DailyHabitLog, location *time.Location) map[string]models.DailyHabitLog {
	byDay := make(map[string]models.DailyHabitLog, len(logs))
	for _, log := range logs {
		byDay[dayKey(log.Date, location)] = log
	}
	return byDay
}
