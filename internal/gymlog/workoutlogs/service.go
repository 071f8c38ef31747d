package workoutlogs

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/gymlog/sessions"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workoutlogs_test

type logsRepo interface {
	List(ctx context.Context, userID int, filter Filter) ([]WorkoutLog, error)
	Get(ctx context.Context, id int) (*WorkoutLog, error)
	Save(ctx context.Context, userID, exerciseID int, date time.Time, values Values) (*WorkoutLog, bool, error)
	Update(ctx context.Context, id int, values Values) (*WorkoutLog, error)
	Delete(ctx context.Context, id int) error
}

// sessionLogger is the sessions service; marking a logged exercise goes the same way as
// marking it on the session endpoint, so day advancement has one path.
type sessionLogger interface {
	LogExercise(ctx context.Context, userID, dayNumber, exerciseID int, completed bool) (*sessions.LogResult, error)
}

type SaveResult struct {
	Log     *WorkoutLog         `json:"log"`
	Created bool                `json:"created"`
	Session *sessions.LogResult `json:"session,omitempty"`
}

type Service struct {
	repo     logsRepo
	sessions sessionLogger
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewService(repo logsRepo, sessionLogger sessionLogger, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:     repo,
		sessions: sessionLogger,
		metrics:  metricsManager,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int, filter Filter) ([]WorkoutLog, error) {
	logs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	if logs == nil {
		logs = []WorkoutLog{}
	}
	return logs, nil
}

func (s *Service) Get(ctx context.Context, id int) (*WorkoutLog, error) {
	return s.repo.Get(ctx, id)
}

// Save stores the log for the date (today when nil). With markComplete the exercise is also
// checked off in the session of dayNumber, 0 being the user's current day.
func (s *Service) Save(
	ctx context.Context,
	userID, exerciseID int,
	date *time.Time,
	values Values,
	markComplete bool,
	dayNumber int,
) (*SaveResult, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}

	logDate := pkg.Today(s.now())
	if date != nil {
		logDate = *date
	}

	wl, created, err := s.repo.Save(ctx, userID, exerciseID, logDate, values)
	if err != nil {
		return nil, fmt.Errorf("save log: %w", err)
	}
	s.metrics.CounterWorkoutLogs.Inc()
	log.Debugf("workout log %d saved for user %d, exercise %d (created: %t)", wl.ID, userID, exerciseID, created)

	result := &SaveResult{
		Log:     wl,
		Created: created,
	}
	if !markComplete {
		return result, nil
	}

	sessionResult, err := s.sessions.LogExercise(ctx, userID, dayNumber, exerciseID, true)
	if err != nil {
		return nil, fmt.Errorf("log %d saved, mark exercise in session: %w", wl.ID, err)
	}
	result.Session = sessionResult

	return result, nil
}

func (s *Service) Update(ctx context.Context, id int, values Values) (*WorkoutLog, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, values)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
