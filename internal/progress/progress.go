// ABOUTME: Progress aggregation over a user's completed workout dates.
// ABOUTME: Monthly percentage, weekly goal tracking, and day streaks.
package progress

import "github.com/harperreed/fitday/internal/models"

// MonthProgress summarises completions in the current month.
type MonthProgress struct {
	Completed   int `json:"completed"`
	DaysInMonth int `json:"days_in_month"`
	Percentage  int `json:"percentage"`
}

// WeekProgress compares completions in the current week to the weekly goal.
type WeekProgress struct {
	Completed int  `json:"completed"`
	Goal      int  `json:"goal"`
	Remaining int  `json:"remaining"`
	Met       bool `json:"met"`
}

// Month counts distinct completed dates in today's month. Dates outside the
// month are ignored, so callers may pass an unfiltered history.
// Percentage is measured against the days elapsed so far, rounded half up
// and capped at 100.
func Month(completed []models.Date, today models.Date) MonthProgress {
	count := 0
	for d := range distinct(completed) {
		if d.SameMonth(today) && !d.After(today) {
			count++
		}
	}

	p := MonthProgress{Completed: count, DaysInMonth: today.DaysInMonth()}
	if today.Day > 0 {
		p.Percentage = min(100, (100*count+today.Day/2)/today.Day)
	}
	return p
}

// Week counts distinct completed dates in the Monday-based week containing today.
func Week(completed []models.Date, today models.Date, goal int) WeekProgress {
	start := WeekStart(today)
	count := 0
	for d := range distinct(completed) {
		if !d.Before(start) && !d.After(today) {
			count++
		}
	}

	return WeekProgress{
		Completed: count,
		Goal:      goal,
		Remaining: max(0, goal-count),
		Met:       goal > 0 && count >= goal,
	}
}

// Streak returns the number of consecutive completed days ending today. If
// today is not done yet, the streak ending yesterday still counts.
func Streak(completed []models.Date, today models.Date) int {
	set := distinct(completed)

	day := today
	if !set[day] {
		day = day.AddDays(-1)
	}

	n := 0
	for set[day] {
		n++
		day = day.AddDays(-1)
	}
	return n
}

// WeekStart returns the Monday on or before d.
func WeekStart(d models.Date) models.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func distinct(dates []models.Date) map[models.Date]bool {
	set := make(map[models.Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
