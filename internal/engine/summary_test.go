package engine

import (
	"testing"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

func mealAt(timestamp string, kcal, protein, fat, carbs int) models.Meal {
	capturedAt, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		panic(err)
	}
	return models.Meal{
		CapturedAt: capturedAt,
		Kcal:       kcal,
		ProteinG:   protein,
		FatG:       fat,
		CarbsG:     carbs,
	}
}

func TestDailyMacrosFromMealsSumsPerDay(t *testing.T) {
	meals := []models.Meal{
		mealAt("2025-06-01T09:00:00Z", 500, 30, 20, 60),
		mealAt("2025-06-01T19:00:00Z", 700, 40, 25, 80),
		mealAt("2025-06-02T08:00:00Z", 400, 20, 15, 50),
	}
	days := DailyMacrosFromMeals(meals, time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 aggregated days, got %d", len(days))
	}
	if *days[0].Kcal != 1200 || *days[0].ProteinG != 70 {
		t.Fatalf("unexpected first day sums: kcal %v protein %v", *days[0].Kcal, *days[0].ProteinG)
	}
	if days[1].Day.Format("2006-01-02") != "2025-06-02" {
		t.Fatalf("unexpected second day: %s", days[1].Day.Format("2006-01-02"))
	}
}

func TestDailyMacrosTimezoneBucketing(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 22:30 UTC is already past midnight in Moscow (UTC+3).
	meals := []models.Meal{
		mealAt("2025-06-01T12:00:00Z", 500, 30, 20, 60),
		mealAt("2025-06-01T22:30:00Z", 300, 15, 10, 30),
	}
	days := DailyMacrosFromMeals(meals, moscow)
	if len(days) != 2 {
		t.Fatalf("expected the late meal to open a new Moscow day, got %d days", len(days))
	}
	if days[1].Day.Format("2006-01-02") != "2025-06-02" {
		t.Fatalf("unexpected second day: %s", days[1].Day.Format("2006-01-02"))
	}

	utcDays := DailyMacrosFromMeals(meals, time.UTC)
	if len(utcDays) != 1 {
		t.Fatalf("expected one UTC day, got %d", len(utcDays))
	}
}

func TestMacroSummaryWeeklyBuckets(t *testing.T) {
	meals := []models.Meal{
		// 2025-06-01 is a Sunday: ISO week starts 2025-05-26.
		mealAt("2025-06-01T09:00:00Z", 500, 30, 20, 60),
		// Monday opens a fresh ISO week.
		mealAt("2025-06-02T09:00:00Z", 700, 40, 25, 80),
		mealAt("2025-06-04T09:00:00Z", 300, 10, 5, 40),
	}
	weeks := MacroSummary(meals, time.UTC, FreqWeekly)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d", len(weeks))
	}
	if weeks[0].PeriodStart.Format("2006-01-02") != "2025-05-26" {
		t.Fatalf("unexpected first week start: %s", weeks[0].PeriodStart.Format("2006-01-02"))
	}
	if weeks[1].PeriodStart.Format("2006-01-02") != "2025-06-02" {
		t.Fatalf("unexpected second week start: %s", weeks[1].PeriodStart.Format("2006-01-02"))
	}
	if weeks[1].Kcal != 1000 {
		t.Fatalf("expected second week kcal 1000, got %v", weeks[1].Kcal)
	}
}

func TestDailyExtrasOmegaRatio(t *testing.T) {
	meal := mealAt("2025-06-01T09:00:00Z", 500, 30, 20, 60)
	meal.Extras = map[string]any{
		"fats":  map[string]any{"total": 20.0, "omega6": 9.0, "omega3": 3.0},
		"fiber": map[string]any{"total": 12.0},
	}
	second := mealAt("2025-06-01T13:00:00Z", 400, 20, 10, 40)
	second.Extras = map[string]any{
		"fats": map[string]any{"omega6": 3.0, "omega3": 1.0},
	}

	days := DailyExtrasFromMeals([]models.Meal{meal, second}, time.UTC)
	if len(days) != 1 {
		t.Fatalf("expected one extras day, got %d", len(days))
	}
	day := days[0]
	if day.Omega6 == nil || *day.Omega6 != 12 {
		t.Fatalf("expected summed omega6 12, got %v", day.Omega6)
	}
	if day.OmegaRatio == nil || *day.OmegaRatio != 3 {
		t.Fatalf("expected omega ratio 3, got %v", day.OmegaRatio)
	}
	if day.FiberTotal == nil || *day.FiberTotal != 12 {
		t.Fatalf("expected fiber total 12, got %v", day.FiberTotal)
	}
}

func TestOmegaRatioNilWhenOmega3Missing(t *testing.T) {
	if ratio := OmegaRatio(floatPtr(10), nil); ratio != nil {
		t.Fatalf("expected nil ratio without omega3, got %v", *ratio)
	}
	if ratio := OmegaRatio(floatPtr(10), floatPtr(0)); ratio != nil {
		t.Fatalf("expected nil ratio for zero omega3, got %v", *ratio)
	}
	if ratio := OmegaRatio(floatPtr(10), floatPtr(3)); ratio == nil || *ratio != 3.33 {
		t.Fatalf("expected ratio 3.33, got %v", ratio)
	}
}

func TestMicronutrientTopOrdering(t *testing.T) {
	meals := []models.Meal{
		{Micronutrients: []string{"железо 2мг", "кальций 100мг"}},
		{Micronutrients: []string{"железо 2мг", "витамин C 30мг"}},
		{Micronutrients: []string{"железо 2мг", "витамин C 30мг"}},
	}
	counts := MicronutrientTop(meals, 2)
	if len(counts) != 2 {
		t.Fatalf("expected top 2 entries, got %d", len(counts))
	}
	if counts[0].NameAmount != "железо 2мг" || counts[0].Count != 3 {
		t.Fatalf("unexpected leader: %+v", counts[0])
	}
	if counts[1].NameAmount != "витамин C 30мг" || counts[1].Count != 2 {
		t.Fatalf("unexpected runner-up: %+v", counts[1])
	}
}
