package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Weekdays are numbered 0=Monday .. 6=Sunday throughout the system.

// ErrInvalidDay is wrapped by every day-expression parse failure.
var ErrInvalidDay = errors.New("invalid day token")

var dayAliases = map[string]int{
	"0": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6,
	"MON": 0, "MONDAY": 0,
	"TUE": 1, "TUESDAY": 1,
	"WED": 2, "WEDNESDAY": 2,
	"THU": 3, "THUR": 3, "THURSDAY": 3,
	"FRI": 4, "FRIDAY": 4,
	"SAT": 5, "SATURDAY": 5,
	"SUN": 6, "SUNDAY": 6,
}

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func parseSingleDay(token string) (int, error) {
	if day, ok := dayAliases[token]; ok {
		return day, nil
	}
	if n, err := strconv.Atoi(token); err == nil {
		return 0, fmt.Errorf("%w: day value must be between 0 and 6, got %d", ErrInvalidDay, n)
	}
	return 0, fmt.Errorf("%w: unknown day %q", ErrInvalidDay, token)
}

func expandToken(token string) ([]int, error) {
	upper := strings.ToUpper(token)
	switch upper {
	case "WEEKDAY", "WEEKDAYS":
		return []int{0, 1, 2, 3, 4}, nil
	case "WEEKEND", "WEEKENDS":
		return []int{5, 6}, nil
	}
	if strings.Contains(upper, "-") {
		parts := strings.SplitN(upper, "-", 2)
		start, err := parseSingleDay(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		end, err := parseSingleDay(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		var days []int
		if start <= end {
			for d := start; d <= end; d++ {
				days = append(days, d)
			}
			return days, nil
		}
		// Ranges wrap across the week: Fri-Mon == Fri,Sat,Sun,Mon
		for d := start; d <= 6; d++ {
			days = append(days, d)
		}
		for d := 0; d <= end; d++ {
			days = append(days, d)
		}
		return days, nil
	}
	day, err := parseSingleDay(upper)
	if err != nil {
		return nil, err
	}
	return []int{day}, nil
}

// ParseDayString expands a flexible day expression ("Mon,Wed", "weekdays",
// "Fri-Mon", "0,2/4") into a deduplicated ascending weekday slice.
// An empty expression means every day.
func ParseDayString(expr string) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	}
	seen := map[int]bool{}
	for _, raw := range strings.Split(strings.ReplaceAll(expr, "/", ","), ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		expanded, err := expandToken(token)
		if err != nil {
			return nil, err
		}
		for _, day := range expanded {
			seen[day] = true
		}
	}
	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}

// NormalizeDays converts a day expression into its canonical comma-joined
// storage form, e.g. "Fri-Mon" -> "0,4,5,6".
func NormalizeDays(expr string) (string, error) {
	days, err := ParseDayString(expr)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = strconv.Itoa(day)
	}
	return strings.Join(parts, ","), nil
}

// DescribeDays collapses a canonical day set into a human label for display.
func DescribeDays(days string) string {
	parsed, err := ParseDayString(days)
	if err != nil {
		return days
	}
	switch {
	case len(parsed) == 7:
		return "Every day"
	case equalDays(parsed, []int{0, 1, 2, 3, 4}):
		return "Weekdays"
	case equalDays(parsed, []int{5, 6}):
		return "Weekend"
	}

	var labels []string
	for i := 0; i < len(parsed); {
		j := i
		for j+1 < len(parsed) && parsed[j+1] == parsed[j]+1 {
			j++
		}
		if j-i >= 2 {
			labels = append(labels, dayNames[parsed[i]]+" – "+dayNames[parsed[j]])
		} else {
			for k := i; k <= j; k++ {
				labels = append(labels, dayNames[parsed[k]])
			}
		}
		i = j + 1
	}
	return strings.Join(labels, ", ")
}

func equalDays(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
