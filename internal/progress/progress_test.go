// ABOUTME: Tests for progress aggregation.
// ABOUTME: Covers month percentage math, filtering, weekly goals, and streaks.
package progress

import (
	"testing"
	"time"

	"github.com/harperreed/fitday/internal/models"
)

func d(y, m, day int) models.Date {
	return models.NewDate(y, time.Month(m), day)
}

func TestMonth(t *testing.T) {
	today := d(2025, 6, 10)

	tests := []struct {
		name      string
		dates     []models.Date
		wantCount int
		wantPct   int
	}{
		{"empty", nil, 0, 0},
		{"two days", []models.Date{d(2025, 6, 2), d(2025, 6, 5)}, 2, 20},
		{"duplicates counted once", []models.Date{d(2025, 6, 2), d(2025, 6, 2)}, 1, 10},
		{"other months ignored", []models.Date{d(2025, 5, 31), d(2024, 6, 2), d(2025, 6, 3)}, 1, 10},
		{"future days ignored", []models.Date{d(2025, 6, 11)}, 0, 0},
		{"every day", daysUpTo(2025, 6, 10), 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Month(tt.dates, today)
			if got.Completed != tt.wantCount {
				t.Errorf("Completed = %d, want %d", got.Completed, tt.wantCount)
			}
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPct)
			}
			if got.DaysInMonth != 30 {
				t.Errorf("DaysInMonth = %d, want 30", got.DaysInMonth)
			}
		})
	}
}

func TestMonthPercentageRounds(t *testing.T) {
	tests := []struct {
		today models.Date
		dates []models.Date
		want  int
	}{
		{d(2025, 6, 3), []models.Date{d(2025, 6, 1), d(2025, 6, 2)}, 67},
		{d(2025, 6, 3), []models.Date{d(2025, 6, 1)}, 33},
		{d(2025, 6, 8), []models.Date{d(2025, 6, 1)}, 13},
		{d(2025, 6, 6), []models.Date{d(2025, 6, 1)}, 17},
	}
	for _, tt := range tests {
		if got := Month(tt.dates, tt.today).Percentage; got != tt.want {
			t.Errorf("Month(%v, %s).Percentage = %d, want %d", tt.dates, tt.today, got, tt.want)
		}
	}
}

func TestMonthPercentageCapped(t *testing.T) {
	got := Month([]models.Date{d(2025, 2, 1)}, d(2025, 2, 1))
	if got.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", got.Percentage)
	}
	if got.DaysInMonth != 28 {
		t.Errorf("DaysInMonth = %d, want 28", got.DaysInMonth)
	}
}

func TestMonthZeroDay(t *testing.T) {
	got := Month([]models.Date{d(2025, 6, 2)}, models.Date{Year: 2025, Month: 6})
	if got.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", got.Percentage)
	}
}

func TestWeek(t *testing.T) {
	// 2025-06-12 is a Thursday; the week starts Monday 2025-06-09.
	today := d(2025, 6, 12)
	dates := []models.Date{
		d(2025, 6, 8), // Sunday of the previous week
		d(2025, 6, 9),
		d(2025, 6, 11),
		d(2025, 6, 11),
		d(2025, 6, 13), // tomorrow
	}

	got := Week(dates, today, 4)
	if got.Completed != 2 || got.Remaining != 2 || got.Met {
		t.Errorf("Week = %+v", got)
	}

	got = Week(dates, today, 2)
	if !got.Met || got.Remaining != 0 {
		t.Errorf("goal of 2 should be met: %+v", got)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  models.Date
		want models.Date
	}{
		{d(2025, 6, 9), d(2025, 6, 9)},
		{d(2025, 6, 15), d(2025, 6, 9)},
		{d(2025, 6, 12), d(2025, 6, 9)},
		{d(2025, 1, 1), d(2024, 12, 30)},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.day); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestStreak(t *testing.T) {
	today := d(2025, 3, 2)

	tests := []struct {
		name  string
		dates []models.Date
		want  int
	}{
		{"none", nil, 0},
		{"today only", []models.Date{today}, 1},
		{"across month boundary", []models.Date{d(2025, 2, 27), d(2025, 2, 28), d(2025, 3, 1), today}, 4},
		{"today not done yet", []models.Date{d(2025, 2, 28), d(2025, 3, 1)}, 2},
		{"gap breaks streak", []models.Date{d(2025, 2, 27), d(2025, 3, 1), today}, 2},
		{"stale", []models.Date{d(2025, 2, 27)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.dates, today); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func daysUpTo(y, m, last int) []models.Date {
	var out []models.Date
	for i := 1; i <= last; i++ {
		out = append(out, d(y, m, i))
	}
	return out
}
