package sessions

import (
	"errors"
	"time"

	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
)

var (
	ErrOpenSessionExists = errors.New("an open session for that day already exists")
	ErrSessionClosed     = errors.New("session is already complete")
	ErrUnknownUser       = errors.New("user not found")
)

// Session is one attempt at a plan day.
type Session struct {
	ID                 int        `json:"id"`
	UserID             int        `json:"user_id"`
	DayNumber          int        `json:"day_number"`
	ExercisesCompleted []int      `json:"exercises_completed"`
	IsComplete         bool       `json:"is_complete"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

// DayStatus is what a user sees for a plan day: the open session, if any, and how far it got.
type DayStatus struct {
	DayNumber int                `json:"day_number"`
	Session   *Session           `json:"session"`
	State     progression.State  `json:"state"`
	Scheduled []int              `json:"scheduled"`
	Progress  *progress.Progress `json:"progress"`
}

// LogResult is the outcome of logging an exercise against a day.
type LogResult struct {
	Session  *Session           `json:"session"`
	Closed   bool               `json:"closed"`
	Progress *progress.Progress `json:"progress"`
}
