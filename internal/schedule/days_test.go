package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"Empty means every day", "", "0,1,2,3,4,5,6"},
		{"Numeric with duplicates", "0,2,2,4", "0,2,4"},
		{"Names case-insensitive", "mon,WED,Fri", "0,2,4"},
		{"Weekday alias", "Weekdays", "0,1,2,3,4"},
		{"Weekend alias", "Weekend", "5,6"},
		{"Wrapping range", "Fri-Mon", "0,4,5,6"},
		{"Forward range", "Tue-Thu", "1,2,3"},
		{"Slash separator", "0/2/4", "0,2,4"},
		{"Mixed tokens", "weekend, Mon", "0,5,6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDays(tt.expr)
			if err != nil {
				t.Fatalf("NormalizeDays(%q) returned error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDays(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNormalizeDays_Invalid(t *testing.T) {
	for _, expr := range []string{"Funday", "7", "-1", "Mon-Funday"} {
		t.Run(expr, func(t *testing.T) {
			_, err := NormalizeDays(expr)
			if err == nil {
				t.Fatalf("NormalizeDays(%q) expected error, got nil", expr)
			}
			if !errors.Is(err, ErrInvalidDay) {
				t.Errorf("expected ErrInvalidDay, got %v", err)
			}
		})
	}
}

func TestParseDayString_AlwaysSortedAndUnique(t *testing.T) {
	got, err := ParseDayString("Sun,Sat,Fri,weekend")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("result not strictly ascending: %v", got)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 unique days, got %v", got)
	}
}

func TestDescribeDays(t *testing.T) {
	tests := []struct {
		days string
		want string
	}{
		{"0,1,2,3,4,5,6", "Every day"},
		{"0,1,2,3,4", "Weekdays"},
		{"5,6", "Weekend"},
		{"0,2,4", "Mon, Wed, Fri"},
		{"4,5,6", "Fri – Sun"},
		{"", "Every day"},
	}

	for _, tt := range tests {
		t.Run(tt.days, func(t *testing.T) {
			if got := DescribeDays(tt.days); got != tt.want {
				t.Errorf("DescribeDays(%q) = %q, want %q", tt.days, got, tt.want)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	// Jan 1 2024 was a Monday.
	monday9 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Rolls over to next listed day", func(t *testing.T) {
		got, ok := NextOccurrence("1,3", "08:15", monday9) // Tue & Thu
		if !ok {
			t.Fatal("expected an occurrence")
		}
		want := time.Date(2024, 1, 2, 8, 15, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Same day when time still ahead", func(t *testing.T) {
		got, ok := NextOccurrence("0,2", "10:00", monday9)
		if !ok {
			t.Fatal("expected an occurrence")
		}
		want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Every day schedule after time has passed", func(t *testing.T) {
		got, ok := NextOccurrence("", "08:00", monday9)
		if !ok {
			t.Fatal("expected an occurrence")
		}
		want := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Never before the reference", func(t *testing.T) {
		for _, days := range []string{"0", "3", "6", "weekdays"} {
			got, ok := NextOccurrence(days, "00:00", monday9)
			if ok && got.Before(monday9.Truncate(time.Minute)) {
				t.Errorf("occurrence %v before reference %v (days %q)", got, monday9, days)
			}
		}
	})

	t.Run("Malformed time yields no occurrence", func(t *testing.T) {
		if _, ok := NextOccurrence("0", "25:99", monday9); ok {
			t.Error("expected no occurrence for malformed time")
		}
	})

	t.Run("Invalid day set yields no occurrence", func(t *testing.T) {
		if _, ok := NextOccurrence("Funday", "08:00", monday9); ok {
			t.Error("expected no occurrence for invalid day set")
		}
	})
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex(time.Monday) != 0 {
		t.Error("Monday must map to 0")
	}
	if WeekdayIndex(time.Sunday) != 6 {
		t.Error("Sunday must map to 6")
	}
}
