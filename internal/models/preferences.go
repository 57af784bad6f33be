// ABOUTME: User preference model: weekly goal (account) and sound flag (device).
// ABOUTME: Provides defaults and weekly goal validation.
package models

import "fmt"

const (
	// DefaultWeeklyGoal applies when no goal has been stored.
	DefaultWeeklyGoal = 4
	MinWeeklyGoal     = 1
	MaxWeeklyGoal     = 7
)

// UserPreferences holds per-user settings.
type UserPreferences struct {
	WeeklyGoal   int  `json:"weekly_goal"`
	SoundEnabled bool `json:"sound_enabled"`
}

// DefaultPreferences returns the settings of a new account.
func DefaultPreferences() UserPreferences {
	return UserPreferences{WeeklyGoal: DefaultWeeklyGoal, SoundEnabled: true}
}

// ValidateWeeklyGoal checks that goal is a number of days in a week.
func ValidateWeeklyGoal(goal int) error {
	if goal < MinWeeklyGoal || goal > MaxWeeklyGoal {
		return fmt.Errorf("weekly goal must be between %d and %d, got %d", MinWeeklyGoal, MaxWeeklyGoal, goal)
	}
	return nil
}
