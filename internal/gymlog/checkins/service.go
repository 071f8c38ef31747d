package checkins

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=checkins_test

type checkInsRepo interface {
	FindOpen(ctx context.Context, userID int) (*CheckIn, error)
	Create(ctx context.Context, userID int, at time.Time) (*CheckIn, error)
	Close(ctx context.Context, id int, at time.Time, durationMinutes int) (*CheckIn, error)
	List(ctx context.Context, userID int, from, to *time.Time) ([]CheckIn, error)
}

type progressTracker interface {
	GetOrCreate(ctx context.Context, userID int) (*progress.Progress, error)
	Advance(ctx context.Context, userID int) (*progress.Progress, error)
}

type sessionCloser interface {
	CheckAndCloseIfDone(ctx context.Context, userID, dayNumber int) (bool, *progress.Progress, error)
}

// Service records gym attendance. What a check-out does to the workout plan is decided by
// the checkout policy; the day itself only ever moves through the progress service.
type Service struct {
	repo     checkInsRepo
	progress progressTracker
	sessions sessionCloser
	policy   progression.CheckoutPolicy
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewService(
	repo checkInsRepo,
	progressTracker progressTracker,
	sessionCloser sessionCloser,
	policy progression.CheckoutPolicy,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:     repo,
		progress: progressTracker,
		sessions: sessionCloser,
		policy:   policy,
		metrics:  metricsManager,
		now:      time.Now,
	}
}

// CheckIn opens a check-in for the user. If one is already open it is returned as is,
// with created false.
func (s *Service) CheckIn(ctx context.Context, userID int) (*CheckIn, bool, error) {
	open, err := s.Open(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if open != nil {
		return open, false, nil
	}

	created, err := s.repo.Create(ctx, userID, s.now())
	if err != nil {
		if !errors.Is(err, ErrOpenCheckInExists) {
			return nil, false, fmt.Errorf("create check-in: %w", err)
		}
		open, err = s.Open(ctx, userID)
		if err != nil {
			return nil, false, err
		}
		if open == nil {
			return nil, false, fmt.Errorf("open check-in for user %d vanished after create conflict", userID)
		}
		return open, false, nil
	}

	s.metrics.CounterCheckIns.Inc()
	log.Debugf("user %d checked in (check-in %d)", userID, created.ID)
	return created, true, nil
}

// CheckOut closes the user's open check-in and applies the checkout policy.
func (s *Service) CheckOut(ctx context.Context, userID int) (*CheckOutResult, error) {
	open, err := s.Open(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenCheckIn
	}

	now := s.now()
	duration := DurationMinutes(open.CheckInTime, now)
	closed, err := s.repo.Close(ctx, open.ID, now, duration)
	if err != nil {
		if errors.Is(err, ErrNoOpenCheckIn) {
			return nil, err
		}
		return nil, fmt.Errorf("close check-in %d: %w", open.ID, err)
	}
	s.metrics.CounterCheckOuts.Inc()
	s.metrics.HistogramCheckInDuration.Observe(float64(duration))
	log.Debugf("user %d checked out after %d minutes", userID, duration)

	result := &CheckOutResult{
		CheckIn: closed,
		Policy:  s.policy,
	}

	switch s.policy {
	case progression.CheckoutAlways:
		p, err := s.progress.Advance(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("advance on check-out: %w", err)
		}
		result.Advanced = p.MaxDay > 0
		result.Progress = p
	case progression.CheckoutWhenComplete:
		current, err := s.progress.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("current day: %w", err)
		}
		advanced, p, err := s.sessions.CheckAndCloseIfDone(ctx, userID, current.CurrentDayNumber)
		if err != nil {
			return nil, fmt.Errorf("close session on check-out: %w", err)
		}
		result.Advanced = advanced
		if advanced {
			result.Progress = p
		} else {
			result.Progress = current
		}
	}

	return result, nil
}

func (s *Service) Open(ctx context.Context, userID int) (*CheckIn, error) {
	open, err := s.repo.FindOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find open check-in: %w", err)
	}
	return open, nil
}

func (s *Service) List(ctx context.Context, userID int, from, to *time.Time) ([]CheckIn, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidPeriod
	}
	checkIns, err := s.repo.List(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	if checkIns == nil {
		checkIns = []CheckIn{}
	}
	return checkIns, nil
}
