package engine

import (
	"math"
	"time"

	"github.com/remardo/nutrios/internal/models"
)

func averageFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}

func countSweetFreeDays(logs []models.DailyHabitLog) int {
	count := 0
	for _, log := range logs {
		if !log.HadSweets {
			count++
		}
	}
	return count
}

func countDaysAtOrAbove(logs []models.DailyHabitLog, value func(models.DailyHabitLog) float64, threshold float64) int {
	count := 0
	for _, log := range logs {
		if value(log) >= threshold {
			count++
		}
	}
	return count
}

func habitSteps(log models.DailyHabitLog) float64 { return float64(log.Steps) }

func habitVegetables(log models.DailyHabitLog) float64 { return float64(log.VegetablesG) }

// proteinSuccessDays counts the days in [start, end] whose logged protein
// falls within tolerance of the protein target. Without targets no day can
// succeed; the full day count is still reported.
func proteinSuccessDays(logsByDay map[string]models.DailyHabitLog, targets *Targets, tolerancePct float64, start time.Time, end time.Time) (int, int) {
	totalDays := 0
	successDays := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		totalDays++
		if targets == nil || targets.ProteinTargetG <= 0 {
			continue
		}
		log, found := logsByDay[day.Format("2006-01-02")]
		if !found {
			continue
		}
		allowed := math.Max(10, targets.ProteinTargetG*tolerancePct)
		if math.Abs(float64(log.ProteinG)-targets.ProteinTargetG) <= allowed {
			successDays++
		}
	}
	return successDays, totalDays
}

// complianceDaysInRange counts compliant days among the aggregated macro
// days falling inside [start, end]. A nil target set yields zero: without
// a corridor nothing can comply.
func complianceDaysInRange(dailyMacros []DailyMacros, targets *Targets, start time.Time, end time.Time) int {
	if targets == nil {
		return 0
	}
	count := 0
	for _, day := range dailyMacros {
		if day.Day.Before(start) || day.Day.After(end) {
			continue
		}
		if DayCompliant(day, *targets) {
			count++
		}
	}
	return count
}

func chunkHabitLogs(logs []models.DailyHabitLog, size int) [][]models.DailyHabitLog {
	if size <= 0 {
		return nil
	}
	chunks := make([][]models.DailyHabitLog, 0, (len(logs)+size-1)/size)
	for offset := 0; offset < len(logs); offset += size {
		limit := offset + size
		if limit > len(logs) {
			limit = len(logs)
		}
		chunks = append(chunks, logs[offset:limit])
	}
	return chunks
}
