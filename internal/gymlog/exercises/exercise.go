package exercises

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryBack     = "back"
	CategoryChest    = "chest"
	CategoryShoulder = "shoulder"
	CategoryLeg      = "leg"
	CategoryArm      = "arm"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidCategory  = errors.New("category must be one of back, chest, shoulder, leg, arm")
	ErrInvalidExercise  = errors.New("invalid exercise")

	Categories = []string{CategoryBack, CategoryChest, CategoryShoulder, CategoryLeg, CategoryArm}
)

type Exercise struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	TargetSets       int       `json:"target_sets"`
	TargetReps       int       `json:"target_reps"`
	TargetWeight     float64   `json:"target_weight"`
	GifURL           string    `json:"gif_url"`
	CreatedForUserID *int      `json:"created_for_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsGlobal reports whether every user sees the exercise.
func (e *Exercise) IsGlobal() bool {
	return e.CreatedForUserID == nil
}

// NormalizeCategory maps plural and mixed-case spellings onto the stored category names.
func NormalizeCategory(category string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(category))
	switch c {
	case "legs":
		c = CategoryLeg
	case "arms":
		c = CategoryArm
	case "shoulders":
		c = CategoryShoulder
	}
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("exercise name is required")
	}
	category, ok := NormalizeCategory(e.Category)
	if !ok {
		return ErrInvalidCategory
	}
	e.Category = category
	if e.TargetSets < 0 || e.TargetReps < 0 || e.TargetWeight < 0 {
		return errors.New("targets must not be negative")
	}
	return nil
}
