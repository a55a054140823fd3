package engine

import (
	"math"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

const (
	BadgeFirstMeal    = "first_meal"
	BadgeSteadyWeek   = "steady_week"
	BadgeFiberFan     = "fiber_fan"
	BadgeOmegaBalance = "omega_balance"
	BadgeHeroReturn   = "hero_return"
)

type BadgeEvaluation struct {
	Earned   bool
	Progress float64
	Meta     map[string]float64
}

// BadgeContext is the shared input assembled once per client and handed to
// every evaluator.
type BadgeContext struct {
	TotalMeals    int
	DailyMacros   []DailyMacros
	DailyExtras   []DailyExtras
	Targets       Targets
	Compliance    []bool
	Segments      []Segment
	CurrentStreak int
	BestStreak    int
}

type Badge struct {
	Code        string
	Title       string
	Description string
	Evaluate    func(*BadgeContext) BadgeEvaluation
}

// badgeRegistry is assembled once at startup and never mutated.
var badgeRegistry = []Badge{
	{
		Code:        BadgeFirstMeal,
		Title:       "Первый шаг",
		Description: "Клиент зафиксировал первую запись о приёме пищи.",
		Evaluate:    evaluateFirstMeal,
	},
	{
		Code:        BadgeSteadyWeek,
		Title:       "В ритме недели",
		Description: "7 дней подряд придерживается целевых макросов.",
		Evaluate:    evaluateSteadyWeek,
	},
	{
		Code:        BadgeFiberFan,
		Title:       "Фанат клетчатки",
		Description: "Среднее потребление клетчатки ≥ 25 г минимум три дня за последнюю неделю.",
		Evaluate:    evaluateFiberFan,
	},
	{
		Code:        BadgeOmegaBalance,
		Title:       "Баланс омега",
		Description: "Баланс омега-6/омега-3 в диапазоне 2–5 не менее трёх дней за неделю.",
		Evaluate:    evaluateOmegaBalance,
	},
	{
		Code:        BadgeHeroReturn,
		Title:       "Возвращение героя",
		Description: "После перерыва вернулся к плану и держит новую серию не менее трёх дней.",
		Evaluate:    evaluateHeroReturn,
	},
}

// BadgeCatalog returns the fixed badge registry in evaluation order.
func BadgeCatalog() []Badge {
	catalog := make([]Badge, len(badgeRegistry))
	copy(catalog, badgeRegistry)
	return catalog
}

// BuildBadgeContext derives the shared evaluator input from a client's
// meals and targets.
func BuildBadgeContext(meals []models.Meal, targets Targets, location *time.Location) BadgeContext {
	dailyMacros := DailyMacrosFromMeals(meals, location)
	complianceDays := make([]ComplianceDay, 0, len(dailyMacros))
	for _, day := range dailyMacros {
		complianceDays = append(complianceDays, ComplianceDay{
			Day:       day.Day,
			Compliant: DayCompliant(day, targets),
		})
	}
	series := FillComplianceGaps(complianceDays)
	segments := SegmentsFromSeries(series)

	return BadgeContext{
		TotalMeals:    len(meals),
		DailyMacros:   dailyMacros,
		DailyExtras:   DailyExtrasFromMeals(meals, location),
		Targets:       targets,
		Compliance:    series,
		Segments:      segments,
		CurrentStreak: CurrentStreak(series),
		BestStreak:    BestStreak(segments),
	}
}

func evaluateFirstMeal(ctx *BadgeContext) BadgeEvaluation {
	earned := ctx.TotalMeals > 0
	progress := 0.0
	if earned {
		progress = 1.0
	}
	return BadgeEvaluation{
		Earned:   earned,
		Progress: progress,
		Meta:     map[string]float64{"total_meals": float64(ctx.TotalMeals)},
	}
}

func evaluateSteadyWeek(ctx *BadgeContext) BadgeEvaluation {
	const requiredDays = 7
	return BadgeEvaluation{
		Earned:   ctx.CurrentStreak >= requiredDays,
		Progress: clamp01(float64(ctx.CurrentStreak) / requiredDays),
		Meta: map[string]float64{
			"current_streak": float64(ctx.CurrentStreak),
			"best_streak":    float64(ctx.BestStreak),
		},
	}
}

func evaluateFiberFan(ctx *BadgeContext) BadgeEvaluation {
	const requiredDays = 3
	const targetAverage = 25.0

	values := make([]float64, 0)
	for _, day := range lastExtras(ctx.DailyExtras, 7) {
		fiber := 0.0
		if day.FiberTotal != nil {
			fiber = *day.FiberTotal
		}
		values = append(values, fiber)
	}
	if len(values) == 0 {
		return BadgeEvaluation{Meta: map[string]float64{"days": 0, "avg_fiber": 0}}
	}

	total := 0.0
	for _, value := range values {
		total += value
	}
	averageFiber := total / float64(len(values))
	coverageProgress := clamp01(float64(len(values)) / requiredDays)
	averageProgress := clamp01(averageFiber / targetAverage)

	return BadgeEvaluation{
		Earned:   len(values) >= requiredDays && averageFiber >= targetAverage,
		Progress: clamp01((coverageProgress + averageProgress) / 2),
		Meta: map[string]float64{
			"days":      float64(len(values)),
			"avg_fiber": math.Round(averageFiber*100) / 100,
		},
	}
}

func evaluateOmegaBalance(ctx *BadgeContext) BadgeEvaluation {
	const requiredDays = 3

	daysWithRatio := 0
	inRange := 0
	for _, day := range lastExtras(ctx.DailyExtras, 7) {
		ratio := day.OmegaRatio
		if ratio == nil {
			ratio = OmegaRatio(day.Omega6, day.Omega3)
		}
		if ratio == nil {
			continue
		}
		daysWithRatio++
		if *ratio >= 2.0 && *ratio <= 5.0 {
			inRange++
		}
	}
	return BadgeEvaluation{
		Earned:   inRange >= requiredDays,
		Progress: clamp01(float64(inRange) / requiredDays),
		Meta: map[string]float64{
			"days":     float64(daysWithRatio),
			"in_range": float64(inRange),
		},
	}
}

// evaluateHeroReturn inspects the segment tail: a fresh compliant run after
// a break, with a solid streak somewhere before the break. The search for
// the previous best stops once a qualifying segment is found.
func evaluateHeroReturn(ctx *BadgeContext) BadgeEvaluation {
	segments := ctx.Segments
	if len(segments) == 0 || !segments[len(segments)-1].Compliant {
		return BadgeEvaluation{
			Meta: map[string]float64{
				"current_streak": float64(ctx.CurrentStreak),
				"previous_best":  float64(ctx.BestStreak),
				"break_length":   0,
			},
		}
	}

	currentLength := segments[len(segments)-1].Length
	breakLength := 0
	if len(segments) >= 2 && !segments[len(segments)-2].Compliant {
		breakLength = segments[len(segments)-2].Length
	}
	previousBest := 0
	if len(segments) >= 3 {
		for index := len(segments) - 3; index >= 0; index-- {
			if !segments[index].Compliant {
				continue
			}
			if segments[index].Length > previousBest {
				previousBest = segments[index].Length
			}
			if previousBest >= 5 {
				break
			}
		}
	}

	progress := (clamp01(float64(currentLength)/3) +
		clamp01(float64(previousBest)/5) +
		clamp01(float64(breakLength)/3)) / 3

	return BadgeEvaluation{
		Earned:   currentLength >= 3 && breakLength >= 3 && previousBest >= 5,
		Progress: clamp01(progress),
		Meta: map[string]float64{
			"current_streak": float64(ctx.CurrentStreak),
			"previous_best":  float64(previousBest),
			"break_length":   float64(breakLength),
		},
	}
}

func lastExtras(days []DailyExtras, limit int) []DailyExtras {
	if len(days) <= limit {
		return days
	}
	return days[len(days)-limit:]
}
