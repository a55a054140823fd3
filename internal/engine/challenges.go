package engine

import (
	"math"

	"github.com/remardo/nutrios/internal/models"
)

const (
	ChallengeWaterDaily     = "water_daily"
	ChallengeLogMealsDaily  = "log_meals_daily"
	ChallengeProteinWeekly  = "protein_balance_weekly"
	ChallengeNoSweetsWeekly = "no_sweets_weekly"
	ChallengeVegetables     = "vegetables_weekly"
	ChallengeStreak2130     = "streak_21_30"
	ChallengeSteps10k       = "steps_10k_monthly"
)

const (
	MetricWaterML        = "water_ml"
	MetricLoggedMeals    = "logged_meals"
	MetricProteinBalance = "protein_balance"
	MetricSweetFreeDays  = "sweet_free_days"
	MetricVegetablesG    = "vegetables_g"
	MetricComplianceDays = "compliance_days"
	MetricSteps          = "steps"
)

const (
	defaultDifficultyMin = 0.05
	defaultDifficultyMax = 0.15
)

// challengeCatalog is the fixed seven-definition catalog seeded into
// storage. Re-seeding updates rows by code and never duplicates.
var challengeCatalog = []models.ChallengeDefinition{
	{
		Code:        ChallengeWaterDaily,
		Name:        "Вода в норме",
		Description: "Выпивайте больше чистой воды в течение дня.",
		Period:      models.ChallengePeriodDaily,
		Metric:      MetricWaterML,
		Config:      map[string]any{"baseline_days": 14, "default_target": 1800, "unit": "мл"},
	},
	{
		Code:        ChallengeLogMealsDaily,
		Name:        "Лог всех приёмов",
		Description: "Отмечайте каждый приём пищи в боте без пропусков.",
		Period:      models.ChallengePeriodDaily,
		Metric:      MetricLoggedMeals,
		Config:      map[string]any{"baseline_days": 14, "min_meals": 3, "unit": "шт."},
	},
	{
		Code:        ChallengeProteinWeekly,
		Name:        "Баланс белка",
		Description: "Попадите в коридор по белку в течение недели.",
		Period:      models.ChallengePeriodWeekly,
		Metric:      MetricProteinBalance,
		Config:      map[string]any{"baseline_weeks": 4, "tolerance_pct": 0.20, "unit": "дней"},
	},
	{
		Code:        ChallengeNoSweetsWeekly,
		Name:        "5 дней без сладкого",
		Description: "Минимум пять дней недели без десертов и сладостей.",
		Period:      models.ChallengePeriodWeekly,
		Metric:      MetricSweetFreeDays,
		Config:      map[string]any{"baseline_weeks": 4, "minimum_days": 5, "unit": "дней"},
	},
	{
		Code:        ChallengeVegetables,
		Name:        "Овощной минимум 400 г/д",
		Description: "Съедайте не менее 400 г овощей в день как минимум несколько раз за неделю.",
		Period:      models.ChallengePeriodWeekly,
		Metric:      MetricVegetablesG,
		Config:      map[string]any{"baseline_weeks": 4, "daily_min": 400, "unit": "дней"},
	},
	{
		Code:        ChallengeStreak2130,
		Name:        "Стрик 21/30",
		Description: "Выполняйте план хотя бы 21 день за последние 30.",
		Period:      models.ChallengePeriodMonthly,
		Metric:      MetricComplianceDays,
		Config:      map[string]any{"window_days": 30, "required_days": 21, "unit": "дней"},
	},
	{
		Code:        ChallengeSteps10k,
		Name:        "10k шагов в 20 днях",
		Description: "Пройдите 10 000 шагов не менее чем в 20 днях месяца.",
		Period:      models.ChallengePeriodMonthly,
		Metric:      MetricSteps,
		Config:      map[string]any{"baseline_days": 30, "daily_target": 10000, "required_days": 20, "unit": "дней"},
	},
}

// ChallengeCatalog returns the static catalog in seed order.
func ChallengeCatalog() []models.ChallengeDefinition {
	catalog := make([]models.ChallengeDefinition, len(challengeCatalog))
	copy(catalog, challengeCatalog)
	return catalog
}

// PeriodLengthDays maps a challenge period to its window length.
func PeriodLengthDays(period string) int {
	switch period {
	case models.ChallengePeriodDaily:
		return 1
	case models.ChallengePeriodMonthly:
		return 30
	default:
		return 7
	}
}

// DifficultyFactor resolves the fractional step-up for a definition: the
// clamped override when supplied, otherwise the midpoint of the band.
func DifficultyFactor(definition models.ChallengeDefinition, override *float64) float64 {
	low := definition.DifficultyMinPct
	if low == 0 {
		low = defaultDifficultyMin
	}
	high := definition.DifficultyMaxPct
	if high == 0 {
		high = defaultDifficultyMax
	}
	if high < low {
		high = low
	}
	if override != nil {
		return math.Max(low, math.Min(high, *override))
	}
	return math.Round((low+high)/2*1000) / 1000
}

// TargetForChallenge maps (baseline, difficulty factor) to the personal
// target plus metric-specific meta. Every mapping is monotonic
// non-decreasing in the factor and clamps into its metric domain.
func TargetForChallenge(definition models.ChallengeDefinition, baseline float64, factor float64) (float64, map[string]any) {
	cfg := definition.Config
	meta := make(map[string]any)

	switch definition.Code {
	case ChallengeWaterDaily:
		base := math.Max(cfgFloat(cfg, "default_target", 1800), baseline)
		meta["unit"] = cfgString(cfg, "unit", "мл")
		return math.Round(base * (1.0 + factor)), meta

	case ChallengeLogMealsDaily:
		minMeals := cfgFloat(cfg, "min_meals", 3)
		base := minMeals
		if baseline > 0 {
			base = math.Max(minMeals, math.Ceil(baseline))
		}
		meta["unit"] = cfgString(cfg, "unit", "шт.")
		return math.Max(minMeals, math.Ceil(base*(1.0+factor))), meta

	case ChallengeProteinWeekly:
		target := math.Max(3, math.Min(7, math.Ceil(baseline*(1.0+factor))))
		meta["unit"] = cfgString(cfg, "unit", "дней")
		meta["tolerance_pct"] = cfgFloat(cfg, "tolerance_pct", 0.2)
		return target, meta

	case ChallengeNoSweetsWeekly:
		minimumDays := cfgFloat(cfg, "minimum_days", 5)
		base := math.Max(minimumDays, baseline)
		meta["unit"] = cfgString(cfg, "unit", "дней")
		return math.Max(minimumDays, math.Min(7, math.Ceil(base*(1.0+factor)))), meta

	case ChallengeVegetables:
		baseDays := baseline
		if baseDays == 0 {
			baseDays = 3
		}
		meta["daily_requirement"] = cfgFloat(cfg, "daily_min", 400)
		meta["unit"] = cfgString(cfg, "unit", "дней")
		return math.Min(7, math.Max(3, math.Ceil(baseDays*(1.0+factor)))), meta

	case ChallengeStreak2130:
		requiredDays := cfgFloat(cfg, "required_days", 21)
		windowDays := cfgFloat(cfg, "window_days", 30)
		base := math.Max(requiredDays, baseline)
		meta["unit"] = cfgString(cfg, "unit", "дней")
		meta["window_days"] = windowDays
		return math.Max(requiredDays, math.Min(windowDays, math.Ceil(base*(1.0+factor)))), meta

	case ChallengeSteps10k:
		requiredDays := cfgFloat(cfg, "required_days", 20)
		windowDays := cfgFloat(cfg, "window_days", 30)
		base := math.Max(requiredDays, baseline)
		meta["unit"] = cfgString(cfg, "unit", "дней")
		meta["daily_steps_target"] = cfgFloat(cfg, "daily_target", 10000)
		return math.Max(requiredDays, math.Min(windowDays, math.Ceil(base*(1.0+factor)))), meta
	}

	return baseline, meta
}

func cfgFloat(cfg map[string]any, key string, fallback float64) float64 {
	if cfg == nil {
		return fallback
	}
	if value := floatValue(cfg[key]); value != nil {
		return *value
	}
	return fallback
}

func cfgString(cfg map[string]any, key string, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if value, ok := cfg[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
