package progress

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type progressRepo interface {
	GetOrCreate(ctx context.Context, userID int) (*Progress, error)
	Advance(ctx context.Context, userID, fromDay int, today time.Time) (*Progress, bool, error)
	SetDay(ctx context.Context, userID, dayNumber int) (*Progress, error)
	Reset(ctx context.Context, userID int) (*Progress, error)
}

type planReader interface {
	MaxDay(ctx context.Context, userID int) (int, error)
}

// Service is the only place a user's day pointer moves. Session completion goes through
// CompleteDay, a manual advance and check-out through Advance.
type Service struct {
	repo    progressRepo
	plan    planReader
	metrics *metrics.Manager
	now     func() time.Time
}

func NewService(repo progressRepo, plan planReader, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		plan:    plan,
		metrics: metricsManager,
		now:     time.Now,
	}
}

// GetOrCreate returns the user's progress. If the plan shrank below the stored day,
// the reported day falls back to 1.
func (s *Service) GetOrCreate(ctx context.Context, userID int) (*Progress, error) {
	p, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	maxDay, err := s.plan.MaxDay(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get max day: %w", err)
	}
	p.MaxDay = maxDay
	p.CurrentDayNumber = progression.ClampDay(p.CurrentDayNumber, maxDay)

	return p, nil
}

// Advance moves the user on from the day they are currently shown.
func (s *Service) Advance(ctx context.Context, userID int) (*Progress, error) {
	return s.advance(ctx, userID, 0)
}

// CompleteDay moves the user to the day after dayNumber, the day whose session just closed,
// whatever day they were on before.
func (s *Service) CompleteDay(ctx context.Context, userID, dayNumber int) (*Progress, error) {
	return s.advance(ctx, userID, dayNumber)
}

func (s *Service) advance(ctx context.Context, userID, fromDay int) (*Progress, error) {
	p, advanced, err := s.repo.Advance(ctx, userID, fromDay, pkg.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("advance progress: %w", err)
	}

	if advanced {
		s.metrics.CounterDayAdvances.Inc()
		log.Debugf("user %d advanced to day %d/%d", userID, p.CurrentDayNumber, p.MaxDay)
	} else {
		log.Debugf("user %d has no plan, advance kept day %d", userID, p.CurrentDayNumber)
	}

	return p, nil
}

func (s *Service) SetDay(ctx context.Context, userID, dayNumber int) (*Progress, error) {
	p, err := s.repo.SetDay(ctx, userID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("set day: %w", err)
	}
	log.Debugf("user %d day set to %d", userID, dayNumber)
	return p, nil
}

func (s *Service) Reset(ctx context.Context, userID int) (*Progress, error) {
	p, err := s.repo.Reset(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reset progress: %w", err)
	}

	maxDay, err := s.plan.MaxDay(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get max day: %w", err)
	}
	p.MaxDay = maxDay

	log.Debugf("user %d progress reset", userID)
	return p, nil
}
