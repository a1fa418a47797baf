package datetime

import (
	"math"
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	result := MustParseTime(DateLayout, "2025-03-14")
	if result.Format(DateLayout) != "2025-03-14" {
		t.Errorf("MustParseTime() = %s, expected 2025-03-14", result.Format(DateLayout))
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Plain date", "2024-01-01", "2024-01-01", false},
		{"Whitespace", "  2024-02-29 ", "2024-02-29", false},
		{"Timestamp", "2024-06-30T12:00:00Z", "2024-06-30", false},
		{"Empty", "", "", true},
		{"Month only", "2024-06", "", true},
		{"Invalid day", "2023-02-29", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, result.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2024-05-10", "2024-05-10", 0},
		{"One year", "2023-01-01", "2024-01-01", 365},
		{"Leap year", "2024-01-01", "2025-01-01", 366},
		{"First semester", "2025-01-01", "2025-06-30", 180},
		{"Reversed", "2024-01-10", "2024-01-01", -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(DateLayout, tt.start)
			end := MustParseTime(DateLayout, tt.end)
			if result := DaysBetween(start, end); result != tt.expected {
				t.Errorf("DaysBetween(%s, %s) = %d, expected %d", tt.start, tt.end, result, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	start := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC)
	if result := DaysBetween(start, end); result != 1 {
		t.Errorf("DaysBetween() = %d, expected 1", result)
	}
}

func TestSemesterBounds(t *testing.T) {
	start, end, err := SemesterBounds(2025, 2)
	if err != nil {
		t.Fatalf("SemesterBounds() error = %v", err)
	}
	if start.Format(DateLayout) != "2025-07-01" || end.Format(DateLayout) != "2025-12-31" {
		t.Errorf("SemesterBounds(2025, 2) = %s..%s", start.Format(DateLayout), end.Format(DateLayout))
	}

	if _, _, err := SemesterBounds(2025, 3); err == nil {
		t.Errorf("SemesterBounds(2025, 3) expected error")
	}
}

func TestSemesterOf(t *testing.T) {
	if SemesterOf(MustParseTime(DateLayout, "2025-06-30")) != 1 {
		t.Errorf("June should be in the first semester")
	}
	if SemesterOf(MustParseTime(DateLayout, "2025-07-01")) != 2 {
		t.Errorf("July should be in the second semester")
	}
}

func TestYearBounds(t *testing.T) {
	d := MustParseTime(DateLayout, "2024-08-15")
	if YearStart(d).Format(DateLayout) != "2024-01-01" {
		t.Errorf("YearStart() = %s", YearStart(d).Format(DateLayout))
	}
	if YearEnd(d).Format(DateLayout) != "2024-12-31" {
		t.Errorf("YearEnd() = %s", YearEnd(d).Format(DateLayout))
	}
}

func TestLaterEarlier(t *testing.T) {
	a := MustParseTime(DateLayout, "2024-01-01")
	b := MustParseTime(DateLayout, "2024-06-01")
	if !Later(a, b).Equal(b) || !Earlier(a, b).Equal(a) {
		t.Errorf("Later/Earlier returned unexpected dates")
	}
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{"One year", "2024-01-01", "2025-01-01", 1},
		{"Ten years across leap days", "2015-01-01", "2025-01-01", 10},
		{"Thirty months", "2022-01-01", "2024-07-01", 2.5},
		{"One month", "2024-03-15", "2024-04-15", 1.0 / 12},
		{"Part of a month", "2025-01-01", "2025-01-16", 15.0 / 31 / 12},
		{"Month end start", "2025-01-31", "2025-03-01", 29.0 / 31 / 12},
		{"Same day", "2025-01-01", "2025-01-01", 0},
		{"End before start", "2025-01-01", "2024-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := YearsBetween(MustParseTime(DateLayout, tt.start), MustParseTime(DateLayout, tt.end))
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("YearsBetween(%s, %s) = %.6f, expected %.6f", tt.start, tt.end, result, tt.expected)
			}
		})
	}
}
