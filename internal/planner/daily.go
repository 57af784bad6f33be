// ABOUTME: Deterministic daily workout selection from the exercise catalog.
// ABOUTME: The same calendar date always yields the same exercises in the same order.
package planner

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/harperreed/fitday/internal/catalog"
	"github.com/harperreed/fitday/internal/models"
)

// MaxExercises is the number of exercises in a daily workout.
const MaxExercises = 6

// SelectWorkout returns the daily workout for date drawn from the compiled-in catalog.
func SelectWorkout(date models.Date) *models.Workout {
	w, err := SelectFrom(date, catalog.All())
	if err != nil {
		// The compiled-in catalog is validated at init and never empty.
		panic(fmt.Sprintf("planner: %v", err))
	}
	return w
}

// SelectFrom ranks exercises for date and keeps the first MaxExercises.
// Ties keep the input order.
func SelectFrom(date models.Date, exercises []models.Exercise) (*models.Workout, error) {
	dayOfYear := date.YearDay()

	ranked := make([]models.Exercise, len(exercises))
	copy(ranked, exercises)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Rank(dayOfYear, ranked[i].ID) < Rank(dayOfYear, ranked[j].ID)
	})

	if len(ranked) > MaxExercises {
		ranked = ranked[:MaxExercises]
	}

	return models.NewWorkout(
		fmt.Sprintf("workout-%d", dayOfYear),
		fmt.Sprintf("Workout of the Day %d/%d", date.Day, int(date.Month)),
		date,
		models.DifficultyIntermediate,
		ranked,
	)
}

// Rank is the sort key of an exercise id on a given day of the year.
func Rank(dayOfYear int, id string) int {
	return (dayOfYear*31 + firstCharCode(id)) % 100
}

func firstCharCode(id string) int {
	if id == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(id)
	return int(r)
}
