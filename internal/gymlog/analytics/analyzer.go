package analytics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=analytics_test

type analyticsRepo interface {
	Logs(ctx context.Context, userID int) ([]LogPoint, error)
	Visits(ctx context.Context, userID int) ([]Visit, error)
	Users(ctx context.Context) ([]UserRef, error)
}

type Summary struct {
	Stats
	Streak  int            `json:"streak"`
	Heatmap [][]HeatmapDay `json:"heatmap"`
}

type UserStats struct {
	User UserRef `json:"user"`
	Stats
}

type Analyzer struct {
	repo analyticsRepo
	now  func() time.Time
}

func NewAnalyzer(repo analyticsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
		now:  time.Now,
	}
}

func (a *Analyzer) today() time.Time {
	return pkg.Today(a.now())
}

// Summary is the user's dashboard: totals, current streak and the 12 week heatmap.
func (a *Analyzer) Summary(ctx context.Context, userID int) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	logs, visits, err := a.userData(ctx, userID)
	if err != nil {
		return nil, err
	}

	logDays := make([]time.Time, 0, len(logs))
	for _, l := range logs {
		logDays = append(logDays, l.Date)
	}

	today := a.today()
	return &Summary{
		Stats:   ComputeStats(visits, logs),
		Streak:  Streak(logDays, today),
		Heatmap: Heatmap(visits, logs, today, DefaultHeatmapWeeks),
	}, nil
}

func (a *Analyzer) CategoryProgress(ctx context.Context, userID int) (_ map[string]CategoryReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.category_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	logs, err := a.repo.Logs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get logs: %w", err)
	}
	return CategoryProgress(logs), nil
}

func (a *Analyzer) Chart(ctx context.Context, userID, days int) (_ []ChartPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.chart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("days", days))

	logs, err := a.repo.Logs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get logs: %w", err)
	}
	return DailyChart(logs, a.today(), days), nil
}

func (a *Analyzer) GymStats(ctx context.Context) (_ *GymStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.gym_stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	users, err := a.repo.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	logs, visits, err := a.userData(ctx, 0)
	if err != nil {
		return nil, err
	}

	regularUsers := 0
	for _, u := range users {
		if u.Role == auth.RoleUser {
			regularUsers++
		}
	}

	stats := ComputeGymStats(regularUsers, visits, logs, a.today())
	return &stats, nil
}

// UsersStats returns the totals of every regular (non-owner) user.
func (a *Analyzer) UsersStats(ctx context.Context) (_ []UserStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.users_stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	users, err := a.repo.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	logs, visits, err := a.userData(ctx, 0)
	if err != nil {
		return nil, err
	}

	user2logs := make(map[int][]LogPoint)
	for _, l := range logs {
		user2logs[l.UserID] = append(user2logs[l.UserID], l)
	}
	user2visits := make(map[int][]Visit)
	for _, v := range visits {
		user2visits[v.UserID] = append(user2visits[v.UserID], v)
	}

	usersStats := make([]UserStats, 0, len(users))
	for _, u := range users {
		if u.Role != auth.RoleUser {
			continue
		}
		usersStats = append(usersStats, UserStats{
			User:  u,
			Stats: ComputeStats(user2visits[u.ID], user2logs[u.ID]),
		})
	}
	return usersStats, nil
}

func (a *Analyzer) userData(ctx context.Context, userID int) ([]LogPoint, []Visit, error) {
	logs, err := a.repo.Logs(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get logs: %w", err)
	}
	visits, err := a.repo.Visits(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get visits: %w", err)
	}
	return logs, visits, nil
}
