package sessions

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

const defaultHistoryLimit = 30

type sessionsRepo interface {
	FindOpen(ctx context.Context, userID, dayNumber int) (*Session, error)
	Create(ctx context.Context, userID, dayNumber int, completed []int) (*Session, error)
	AddExercise(ctx context.Context, sessionID, exerciseID int) (*Session, error)
	RemoveExercise(ctx context.Context, sessionID, exerciseID int) (*Session, error)
	Close(ctx context.Context, sessionID int) (*Session, error)
	List(ctx context.Context, userID, dayNumber, limit int) ([]Session, error)
}

type scheduleReader interface {
	ScheduledExerciseIDs(ctx context.Context, userID, dayNumber int) ([]int, error)
}

type progressTracker interface {
	GetOrCreate(ctx context.Context, userID int) (*progress.Progress, error)
	CompleteDay(ctx context.Context, userID, dayNumber int) (*progress.Progress, error)
}

// Service tracks sessions per plan day and closes them once the day's exercises are done.
// Closing a session is what advances the user's day.
type Service struct {
	repo     sessionsRepo
	schedule scheduleReader
	progress progressTracker
	rule     progression.CompletionRule
	metrics  *metrics.Manager
}

func NewService(
	repo sessionsRepo,
	schedule scheduleReader,
	progress progressTracker,
	rule progression.CompletionRule,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:     repo,
		schedule: schedule,
		progress: progress,
		rule:     rule,
		metrics:  metricsManager,
	}
}

// FindOpenSession returns the day's open session or nil. Sessions started on earlier
// dates still count as open.
func (s *Service) FindOpenSession(ctx context.Context, userID, dayNumber int) (*Session, error) {
	session, err := s.repo.FindOpen(ctx, userID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return session, nil
}

// MarkExerciseComplete adds (completed) or removes the exercise in the day's open session,
// opening a session first when there is none.
func (s *Service) MarkExerciseComplete(ctx context.Context, userID, dayNumber, exerciseID int, completed bool) (*Session, error) {
	open, err := s.FindOpenSession(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}

	if open == nil {
		var initial []int
		if completed {
			initial = []int{exerciseID}
		}
		created, err := s.repo.Create(ctx, userID, dayNumber, initial)
		if err == nil {
			log.Debugf("session %d opened for user %d day %d", created.ID, userID, dayNumber)
			return created, nil
		}
		if !errors.Is(err, ErrOpenSessionExists) {
			return nil, fmt.Errorf("create session: %w", err)
		}

		// lost the race to a concurrent create, use the winner's session
		open, err = s.FindOpenSession(ctx, userID, dayNumber)
		if err != nil {
			return nil, err
		}
		if open == nil {
			return nil, fmt.Errorf("open session for user %d day %d vanished after create conflict", userID, dayNumber)
		}
	}

	var updated *Session
	if completed {
		updated, err = s.repo.AddExercise(ctx, open.ID, exerciseID)
	} else {
		updated, err = s.repo.RemoveExercise(ctx, open.ID, exerciseID)
	}
	if err != nil {
		return nil, fmt.Errorf("update session %d: %w", open.ID, err)
	}

	return updated, nil
}

// CheckAndCloseIfDone closes the day's open session once it covers the schedule and then
// moves the user to the day after dayNumber. Calling it again, or concurrently, never
// advances twice.
func (s *Service) CheckAndCloseIfDone(ctx context.Context, userID, dayNumber int) (bool, *progress.Progress, error) {
	closed, p, err := s.closeIfDone(ctx, userID, dayNumber)
	return closed != nil, p, err
}

func (s *Service) closeIfDone(ctx context.Context, userID, dayNumber int) (*Session, *progress.Progress, error) {
	open, err := s.FindOpenSession(ctx, userID, dayNumber)
	if err != nil {
		return nil, nil, err
	}
	if open == nil {
		return nil, nil, nil
	}

	scheduled, err := s.schedule.ScheduledExerciseIDs(ctx, userID, dayNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("scheduled exercises: %w", err)
	}
	if !s.rule.IsDone(open.ExercisesCompleted, scheduled) {
		return nil, nil, nil
	}

	closed, err := s.repo.Close(ctx, open.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("close session %d: %w", open.ID, err)
	}
	if closed == nil {
		log.Debugf("session %d was already closed", open.ID)
		return nil, nil, nil
	}
	s.metrics.CounterSessionsClosed.Inc()

	p, err := s.progress.CompleteDay(ctx, userID, dayNumber)
	if err != nil {
		return closed, nil, fmt.Errorf("advance after closing session %d: %w", open.ID, err)
	}

	log.Debugf("session %d closed, user %d now on day %d", open.ID, userID, p.CurrentDayNumber)
	return closed, p, nil
}

// LogExercise marks the exercise and closes the session when that finished the day.
// dayNumber 0 means the user's current day.
func (s *Service) LogExercise(ctx context.Context, userID, dayNumber, exerciseID int, completed bool) (*LogResult, error) {
	if dayNumber <= 0 {
		p, err := s.progress.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("current day: %w", err)
		}
		dayNumber = p.CurrentDayNumber
	}

	session, err := s.MarkExerciseComplete(ctx, userID, dayNumber, exerciseID, completed)
	if err != nil {
		return nil, err
	}

	closedSession, p, err := s.closeIfDone(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}
	closed := closedSession != nil
	if closed {
		session = closedSession
	} else {
		p, err = s.progress.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get progress: %w", err)
		}
	}

	return &LogResult{
		Session:  session,
		Closed:   closed,
		Progress: p,
	}, nil
}

// DayStatus reports the day's open session and engine state. dayNumber 0 means the current day.
func (s *Service) DayStatus(ctx context.Context, userID, dayNumber int) (*DayStatus, error) {
	p, err := s.progress.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	if dayNumber <= 0 {
		dayNumber = p.CurrentDayNumber
	}

	open, err := s.FindOpenSession(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.schedule.ScheduledExerciseIDs(ctx, userID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("scheduled exercises: %w", err)
	}
	if scheduled == nil {
		scheduled = []int{}
	}

	var completed []int
	if open != nil {
		completed = open.ExercisesCompleted
	}

	return &DayStatus{
		DayNumber: dayNumber,
		Session:   open,
		State:     progression.StateOf(open != nil, completed, scheduled, s.rule),
		Scheduled: scheduled,
		Progress:  p,
	}, nil
}

func (s *Service) History(ctx context.Context, userID, dayNumber, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	sessions, err := s.repo.List(ctx, userID, dayNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}
