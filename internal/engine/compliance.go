package engine

import (
	"math"
	"time"
)

// DailyMacros is one aggregated calendar day of macro intake. Nil fields
// mean the value could not be derived from the day's meals.
type DailyMacros struct {
	Day      time.Time
	Kcal     *float64
	ProteinG *float64
	FatG     *float64
	CarbsG   *float64
}

// DayCompliant reports whether a day's macros fall inside the tolerance
// corridor of the targets. Missing values and non-positive targets fail
// closed: the macro counts as out of corridor.
func DayCompliant(day DailyMacros, targets Targets) bool {
	tolerances := targets.Tolerances
	kcalOK := withinTolerance(day.Kcal, targets.KcalTarget, tolerances.KcalPct, 0)
	proteinOK := withinTolerance(day.ProteinG, targets.ProteinTargetG, tolerances.ProteinPct, tolerances.MinProteinG)
	fatOK := withinTolerance(day.FatG, targets.FatTargetG, tolerances.FatPct, tolerances.MinFatG)
	carbsOK := withinTolerance(day.CarbsG, targets.CarbsTargetG, tolerances.CarbsPct, tolerances.MinCarbsG)
	return kcalOK && proteinOK && fatOK && carbsOK
}

func withinTolerance(actual *float64, target float64, pct float64, minGrams float64) bool {
	if actual == nil || target <= 0 {
		return false
	}
	allowed := math.Max(minGrams, target*pct)
	return math.Abs(*actual-target) <= allowed
}
