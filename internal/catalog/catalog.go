// ABOUTME: Compiled-in exercise catalog in declaration order.
// ABOUTME: Read-only; callers always receive copies.
package catalog

import (
	"fmt"

	"github.com/harperreed/fitday/internal/models"
)

const (
	imgChest  = "https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?w=400&h=300&fit=crop"
	imgLegs   = "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=400&h=300&fit=crop"
	imgFull   = "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop"
	imgCore   = "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=300&fit=crop"
	imgCardio = "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=400&h=300&fit=crop"
)

type entry struct {
	id, name    string
	work, reps  int
	rest        int
	muscleGroup string
	image       string
	steps       []string
}

var entries = []entry{
	{"pushup", "Push-up", 45, 15, 15, "Chest & Triceps", imgChest, []string{
		"Place your hands shoulder-width apart",
		"Keep your body straight from head to heels",
		"Lower until your chest almost touches the floor",
		"Push back up explosively",
	}},
	{"squat", "Squat", 45, 20, 15, "Legs & Glutes", imgLegs, []string{
		"Feet shoulder-width apart",
		"Sit back as if into a chair",
		"Keep your knees in line with your toes",
		"Drive up through your heels",
	}},
	{"burpee", "Burpee", 45, 12, 20, "Full Body", imgFull, []string{
		"Start standing",
		"Squat down and place your hands on the floor",
		"Kick your feet back into a plank",
		"Bring your feet in and jump up",
	}},
	{"plank", "Plank", 60, 0, 15, "Core", imgCore, []string{
		"Rest on your forearms and toes",
		"Keep your body straight as a board",
		"Brace your abs",
		"Breathe steadily",
	}},
	{"jumpingjack", "Jumping Jack", 45, 30, 15, "Cardio", imgCardio, []string{
		"Start with feet together and arms at your sides",
		"Jump, spreading your legs and raising your arms",
		"Return to the start position",
		"Keep a steady rhythm",
	}},
	{"mountainclimber", "Mountain Climber", 45, 30, 15, "Core & Cardio", imgCore, []string{
		"Start in a high plank",
		"Drive one knee towards your chest",
		"Alternate legs quickly",
		"Keep your core tight",
	}},
	{"lunge", "Lunge", 45, 16, 15, "Legs", imgLegs, []string{
		"Step forward",
		"Lower until both knees reach 90 degrees",
		"Back knee almost touches the floor",
		"Alternate legs",
	}},
	{"crunches", "Crunch", 45, 25, 15, "Abs", imgCore, []string{
		"Lie on your back with knees bent",
		"Hands behind your head",
		"Lift your shoulders off the floor",
		"Squeeze your abs",
	}},
	{"tricep-dips", "Tricep Dip", 45, 15, 15, "Triceps", imgChest, []string{
		"Use a chair or bench",
		"Hands on the edge, fingers forward",
		"Lower by bending your elbows",
		"Push back up",
	}},
	{"high-knees", "High Knees", 45, 40, 15, "Cardio", imgCardio, []string{
		"Run in place",
		"Lift your knees to hip height",
		"Pump your arms",
		"Keep the pace high",
	}},
	{"side-plank", "Side Plank", 30, 0, 15, "Obliques", imgCore, []string{
		"Lie on your side, resting on one forearm",
		"Lift your hips off the floor",
		"Keep your body in a straight line",
		"Repeat on both sides",
	}},
	{"bicycle-crunches", "Bicycle Crunch", 45, 30, 15, "Obliques & Abs", imgCore, []string{
		"Lie on your back, hands behind your head",
		"Bring an elbow to the opposite knee",
		"Alternate sides in a pedalling motion",
		"Keep your core engaged",
	}},
}

var exercises = mustBuild(entries)

func mustBuild(in []entry) []models.Exercise {
	out := make([]models.Exercise, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, e := range in {
		ex, err := models.NewExercise(e.id, e.name, e.work, e.reps, e.rest, e.muscleGroup, e.image, e.steps...)
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		if seen[e.id] {
			panic(fmt.Sprintf("catalog: duplicate exercise id %q", e.id))
		}
		seen[e.id] = true
		out = append(out, ex)
	}
	return out
}

// All returns every exercise in declaration order.
func All() []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.Clone()
	}
	return out
}

// Lookup returns the exercise with the given id.
func Lookup(id string) (models.Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Exercise{}, false
}

// Len returns the catalog size.
func Len() int {
	return len(exercises)
}
