package schedule

import "time"

// WeekdayIndex maps Go's Sunday-based weekday onto our Monday-based numbering.
func WeekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// NextOccurrence scans forward from ref (floored to the minute) for the first
// moment the given day set hits startTime, up to 14 days out. The second
// return value is false when the day set is empty or startTime is malformed.
func NextOccurrence(days, startTime string, ref time.Time) (time.Time, bool) {
	parsed, err := ParseDayString(days)
	if err != nil || len(parsed) == 0 {
		return time.Time{}, false
	}
	at, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, false
	}

	inSet := map[int]bool{}
	for _, day := range parsed {
		inSet[day] = true
	}

	ref = ref.Truncate(time.Minute)
	for offset := 0; offset <= 14; offset++ {
		day := ref.AddDate(0, 0, offset)
		if !inSet[WeekdayIndex(day.Weekday())] {
			continue
		}
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			at.Hour(), at.Minute(), 0, 0, ref.Location())
		if !candidate.Before(ref) {
			return candidate, true
		}
	}
	return time.Time{}, false
}
