package workoutlogs

import (
	"errors"
	"time"
)

var (
	ErrLogNotFound      = errors.New("workout log not found")
	ErrUnknownReference = errors.New("user or exercise not found")
	ErrInvalidLog       = errors.New("actual_sets and actual_reps must be non-negative numbers")
)

// SetData is the per-set record of a logged exercise.
type SetData struct {
	SetNumber    int     `json:"set_number"`
	TargetWeight float64 `json:"target_weight"`
	TargetReps   int     `json:"target_reps"`
	ActualWeight float64 `json:"actual_weight"`
	ActualReps   int     `json:"actual_reps"`
	Completed    bool    `json:"completed"`
}

type WorkoutLog struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	ExerciseID       int       `json:"exercise_id"`
	ExerciseName     string    `json:"exercise_name"`
	ExerciseCategory string    `json:"exercise_category"`
	Date             time.Time `json:"date"`
	ActualSets       int       `json:"actual_sets"`
	ActualReps       int       `json:"actual_reps"`
	Weight           float64   `json:"weight"`
	SetsData         []SetData `json:"sets_data"`
	CreatedAt        time.Time `json:"created_at"`
}

// Filter narrows a user's log list. Zero values match everything.
type Filter struct {
	ExerciseID int
	Date       *time.Time
}

// Values are the fields a save or update writes.
type Values struct {
	ActualSets int
	ActualReps int
	Weight     float64
	SetsData   []SetData
}

func (v Values) Validate() error {
	if v.ActualSets < 0 || v.ActualReps < 0 {
		return ErrInvalidLog
	}
	return nil
}
