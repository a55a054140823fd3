package engine

import (
	"strconv"
	"strings"
	"time"
)

// DayAtLocation truncates a stored UTC timestamp to its civil calendar day
// in the reporting timezone. All bucketing goes through this single point.
func DayAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DayAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ISOWeekStart returns the Monday of the civil week containing value.
func ISOWeekStart(value time.Time, location *time.Location) time.Time {
	day := DayAtLocation(value, location)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

// floatValue defensively coerces JSON-decoded values to a float. Unparsable
// input yields nil rather than an error.
func floatValue(raw any) *float64 {
	switch value := raw.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case float32:
		converted := float64(value)
		return &converted
	case int:
		converted := float64(value)
		return &converted
	case int64:
		converted := float64(value)
		return &converted
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

func intValue(raw any) int {
	parsed := floatValue(raw)
	if parsed == nil {
		return 0
	}
	return int(*parsed)
}

func boolValue(raw any) bool {
	switch value := raw.(type) {
	case bool:
		return value
	case string:
		normalized := strings.ToLower(strings.TrimSpace(value))
		return normalized == "true" || normalized == "1" || normalized == "yes" || normalized == "да"
	case float64:
		return value != 0
	case int:
		return value != 0
	default:
		return false
	}
}

func floatPtr(value float64) *float64 {
	return &value
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
