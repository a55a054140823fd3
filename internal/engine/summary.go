package engine

import (
	"math"
	"sort"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

const (
	FreqDaily  = "D"
	FreqWeekly = "W"
)

// DailyExtras is one aggregated calendar day of extended nutrition fields.
// A nil field means no meal that day carried the value.
type DailyExtras struct {
	Day           time.Time
	FatsTotal     *float64
	FatsSaturated *float64
	Omega6        *float64
	Omega3        *float64
	OmegaRatio    *float64
	FiberTotal    *float64
}

// PeriodMacros is one day or ISO-week bucket of summed macros.
type PeriodMacros struct {
	PeriodStart time.Time
	Kcal        float64
	ProteinG    float64
	FatG        float64
	CarbsG      float64
}

type MicronutrientCount struct {
	NameAmount string
	Count      int
}

type mealFacts struct {
	capturedAt    time.Time
	kcal          float64
	proteinG      float64
	fatG          float64
	carbsG        float64
	fatsTotal     *float64
	fatsSaturated *float64
	omega6        *float64
	omega3        *float64
	fiberTotal    *float64
}

func flattenMeal(meal models.Meal) mealFacts {
	facts := mealFacts{
		capturedAt: meal.CapturedAt,
		kcal:       float64(meal.Kcal),
		proteinG:   float64(meal.ProteinG),
		fatG:       float64(meal.FatG),
		carbsG:     float64(meal.CarbsG),
	}
	fats, _ := meal.Extras["fats"].(map[string]any)
	fiber, _ := meal.Extras["fiber"].(map[string]any)
	if fats != nil {
		facts.fatsTotal = floatValue(fats["total"])
		facts.fatsSaturated = floatValue(fats["saturated"])
		facts.omega6 = floatValue(fats["omega6"])
		facts.omega3 = floatValue(fats["omega3"])
	}
	if fiber != nil {
		facts.fiberTotal = floatValue(fiber["total"])
	}
	return facts
}

func sortedFacts(meals []models.Meal) []mealFacts {
	facts := make([]mealFacts, 0, len(meals))
	for _, meal := range meals {
		facts = append(facts, flattenMeal(meal))
	}
	sort.Slice(facts, func(i, j int) bool {
		return facts[i].capturedAt.Before(facts[j].capturedAt)
	})
	return facts
}

// DailyMacrosFromMeals sums meal macros per civil calendar day in the
// reporting timezone, chronologically ordered.
func DailyMacrosFromMeals(meals []models.Meal, location *time.Location) []DailyMacros {
	days := make([]DailyMacros, 0)
	for _, facts := range sortedFacts(meals) {
		day := DayAtLocation(facts.capturedAt, location)
		if count := len(days); count == 0 || !sameDay(days[count-1].Day, day) {
			days = append(days, DailyMacros{
				Day:      day,
				Kcal:     floatPtr(0),
				ProteinG: floatPtr(0),
				FatG:     floatPtr(0),
				CarbsG:   floatPtr(0),
			})
		}
		current := &days[len(days)-1]
		*current.Kcal += facts.kcal
		*current.ProteinG += facts.proteinG
		*current.FatG += facts.fatG
		*current.CarbsG += facts.carbsG
	}
	return days
}

// DailyExtrasFromMeals sums the extended fields per civil day, keeping a
// field nil when no meal of the day carried it. The omega ratio is derived
// from the day's sums when omega3 is positive.
func DailyExtrasFromMeals(meals []models.Meal, location *time.Location) []DailyExtras {
	days := make([]DailyExtras, 0)
	for _, facts := range sortedFacts(meals) {
		day := DayAtLocation(facts.capturedAt, location)
		if count := len(days); count == 0 || !sameDay(days[count-1].Day, day) {
			days = append(days, DailyExtras{Day: day})
		}
		current := &days[len(days)-1]
		current.FatsTotal = addOptional(current.FatsTotal, facts.fatsTotal)
		current.FatsSaturated = addOptional(current.FatsSaturated, facts.fatsSaturated)
		current.Omega6 = addOptional(current.Omega6, facts.omega6)
		current.Omega3 = addOptional(current.Omega3, facts.omega3)
		current.FiberTotal = addOptional(current.FiberTotal, facts.fiberTotal)
	}
	for index := range days {
		days[index].OmegaRatio = OmegaRatio(days[index].Omega6, days[index].Omega3)
	}
	return days
}

// OmegaRatio divides omega6 by omega3, rounded to two decimals. Nil when
// either side is missing or omega3 is not positive.
func OmegaRatio(omega6, omega3 *float64) *float64 {
	if omega6 == nil || omega3 == nil || *omega3 <= 0 {
		return nil
	}
	return floatPtr(math.Round(*omega6 / *omega3 * 100) / 100)
}

// MacroSummary buckets meal macros by civil day or ISO week (Monday
// start), sums each bucket and rounds to whole units.
func MacroSummary(meals []models.Meal, location *time.Location, freq string) []PeriodMacros {
	periods := make([]PeriodMacros, 0)
	for _, facts := range sortedFacts(meals) {
		start := DayAtLocation(facts.capturedAt, location)
		if freq == FreqWeekly {
			start = ISOWeekStart(facts.capturedAt, location)
		}
		if count := len(periods); count == 0 || !sameDay(periods[count-1].PeriodStart, start) {
			periods = append(periods, PeriodMacros{PeriodStart: start})
		}
		current := &periods[len(periods)-1]
		current.Kcal += facts.kcal
		current.ProteinG += facts.proteinG
		current.FatG += facts.fatG
		current.CarbsG += facts.carbsG
	}
	for index := range periods {
		periods[index].Kcal = math.Round(periods[index].Kcal)
		periods[index].ProteinG = math.Round(periods[index].ProteinG)
		periods[index].FatG = math.Round(periods[index].FatG)
		periods[index].CarbsG = math.Round(periods[index].CarbsG)
	}
	return periods
}

// MicronutrientTop counts micronutrient mentions across meals and returns
// the most frequent entries, ties broken alphabetically.
func MicronutrientTop(meals []models.Meal, top int) []MicronutrientCount {
	counts := make(map[string]int)
	for _, meal := range meals {
		for _, entry := range meal.Micronutrients {
			counts[entry]++
		}
	}
	ranked := make([]MicronutrientCount, 0, len(counts))
	for nameAmount, count := range counts {
		ranked = append(ranked, MicronutrientCount{NameAmount: nameAmount, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].NameAmount < ranked[j].NameAmount
		}
		return ranked[i].Count > ranked[j].Count
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

func addOptional(current, addition *float64) *float64 {
	if addition == nil {
		return current
	}
	if current == nil {
		return floatPtr(*addition)
	}
	return floatPtr(*current + *addition)
}
