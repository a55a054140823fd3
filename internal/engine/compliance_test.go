package engine

import (
	"testing"
	"time"
)

func macroDay(date string, kcal, protein, fat, carbs float64) DailyMacros {
	return DailyMacros{
		Day:      mustParseDay(date),
		Kcal:     floatPtr(kcal),
		ProteinG: floatPtr(protein),
		FatG:     floatPtr(fat),
		CarbsG:   floatPtr(carbs),
	}
}

func mustParseDay(date string) time.Time {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		panic(err)
	}
	return day
}

func TestDayCompliantExactTargets(t *testing.T) {
	targets := DefaultTargets()
	day := macroDay("2025-06-01", 2000, 100, 70, 250)
	if !DayCompliant(day, targets) {
		t.Fatalf("expected a day hitting every target exactly to be compliant")
	}
}

func TestDayCompliantKcalCorridor(t *testing.T) {
	targets := DefaultTargets()

	inside := macroDay("2025-06-01", 2150, 100, 70, 250)
	if !DayCompliant(inside, targets) {
		t.Fatalf("expected 2150 kcal to sit inside the 10%% corridor around 2000")
	}

	outside := macroDay("2025-06-01", 2300, 100, 70, 250)
	if DayCompliant(outside, targets) {
		t.Fatalf("expected 2300 kcal to fall outside the 10%% corridor around 2000")
	}
}

func TestDayCompliantGramFloors(t *testing.T) {
	targets := DefaultTargets()
	targets.ProteinTargetG = 30 // 20% corridor is 6g, the 10g floor wins

	day := macroDay("2025-06-01", 2000, 39, 70, 250)
	if !DayCompliant(day, targets) {
		t.Fatalf("expected the 10g protein floor to admit a 9g deviation")
	}

	day = macroDay("2025-06-01", 2000, 41, 70, 250)
	if DayCompliant(day, targets) {
		t.Fatalf("expected an 11g protein deviation to exceed the floor")
	}
}

func TestDayCompliantMissingValueFailsClosed(t *testing.T) {
	targets := DefaultTargets()
	day := macroDay("2025-06-01", 2000, 100, 70, 250)
	day.FatG = nil
	if DayCompliant(day, targets) {
		t.Fatalf("expected a day with a missing macro to be non-compliant")
	}
}

func TestDayCompliantNonPositiveTargetFailsClosed(t *testing.T) {
	targets := DefaultTargets()
	targets.CarbsTargetG = 0
	day := macroDay("2025-06-01", 2000, 100, 70, 250)
	if DayCompliant(day, targets) {
		t.Fatalf("expected a zero carbs target to make the day non-compliant")
	}
}

func TestTolerancesFromMapOverlay(t *testing.T) {
	tolerances := TolerancesFromMap(map[string]any{
		"kcal_pct": 0.05,
		"min_g":    map[string]any{"p": 5.0},
	})
	if tolerances.KcalPct != 0.05 {
		t.Fatalf("expected overridden kcal_pct 0.05, got %v", tolerances.KcalPct)
	}
	if tolerances.MinProteinG != 5 {
		t.Fatalf("expected overridden protein floor 5, got %v", tolerances.MinProteinG)
	}
	if tolerances.ProteinPct != 0.20 {
		t.Fatalf("expected default protein_pct to survive, got %v", tolerances.ProteinPct)
	}
	if tolerances.MinCarbsG != 15 {
		t.Fatalf("expected default carbs floor to survive, got %v", tolerances.MinCarbsG)
	}
}
