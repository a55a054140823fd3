package engine

import "time"

// ComplianceDay pairs a calendar day with its compliance verdict.
type ComplianceDay struct {
	Day       time.Time
	Compliant bool
}

// Segment is a maximal run of consecutive days sharing one compliance
// value. An ordered segment list reconstructs the boolean series exactly.
type Segment struct {
	Compliant bool
	Length    int
}

// FillComplianceGaps expands a chronological day sequence into a dense
// boolean series. Calendar days absent between two present records are
// inserted as non-compliant: a day without logging is a day off plan.
func FillComplianceGaps(days []ComplianceDay) []bool {
	if len(days) == 0 {
		return nil
	}
	series := make([]bool, 0, len(days))
	var previous time.Time
	for index, record := range days {
		if index > 0 {
			gap := daysBetween(previous, record.Day)
			for missing := 1; missing < gap; missing++ {
				series = append(series, false)
			}
		}
		series = append(series, record.Compliant)
		previous = record.Day
	}
	return series
}

// SegmentsFromSeries run-length encodes a boolean series.
func SegmentsFromSeries(series []bool) []Segment {
	segments := make([]Segment, 0)
	for _, value := range series {
		if count := len(segments); count > 0 && segments[count-1].Compliant == value {
			segments[count-1].Length++
			continue
		}
		segments = append(segments, Segment{Compliant: value, Length: 1})
	}
	return segments
}

// SeriesFromSegments is the inverse of SegmentsFromSeries.
func SeriesFromSegments(segments []Segment) []bool {
	series := make([]bool, 0)
	for _, segment := range segments {
		for index := 0; index < segment.Length; index++ {
			series = append(series, segment.Compliant)
		}
	}
	return series
}

// CurrentStreak is the trailing run of compliant days, zero when the series
// ends in a non-compliant day or is empty.
func CurrentStreak(series []bool) int {
	streak := 0
	for index := len(series) - 1; index >= 0; index-- {
		if !series[index] {
			break
		}
		streak++
	}
	return streak
}

// BestStreak is the longest compliant segment, zero when there is none.
func BestStreak(segments []Segment) int {
	best := 0
	for _, segment := range segments {
		if segment.Compliant && segment.Length > best {
			best = segment.Length
		}
	}
	return best
}
