package progress

import (
	"errors"
	"time"
)

var (
	ErrDayOutOfRange = errors.New("day_number is outside of the user's plan")
	ErrUnknownUser   = errors.New("user not found")
)

// Progress is the user's pointer into the rolling plan.
type Progress struct {
	UserID                 int        `json:"user_id"`
	CurrentDayNumber       int        `json:"current_day_number"`
	TotalWorkoutsCompleted int        `json:"total_workouts_completed"`
	LastWorkoutDate        *time.Time `json:"last_workout_date"`
	UpdatedAt              time.Time  `json:"updated_at"`
	// MaxDay is the plan length at read time, not stored.
	MaxDay int `json:"max_day"`
}
