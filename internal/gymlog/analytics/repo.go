package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

// UserRef is the part of a user the admin stats show.
type UserRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Logs returns workout logs with their exercise targets, oldest first.
// userID 0 returns the logs of every user.
func (r *Repo) Logs(ctx context.Context, userID int) (_ []LogPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.logs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT wl.user_id, wl.exercise_id, e.name, e.category, wl.date,
				wl.actual_sets, wl.actual_reps, wl.weight,
				e.target_sets, e.target_reps, e.target_weight
			FROM workout_logs wl
			JOIN exercises e ON e.id = wl.exercise_id
			WHERE $1::int = 0 OR wl.user_id = $1
			ORDER BY wl.date, wl.id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics logs [query]: %w", err)
	}

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LogPoint, error) {
		var l LogPoint
		err := row.Scan(
			&l.UserID, &l.ExerciseID, &l.ExerciseName, &l.Category, &l.Date,
			&l.ActualSets, &l.ActualReps, &l.Weight,
			&l.TargetSets, &l.TargetReps, &l.TargetWeight,
		)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("analytics logs [collect rows]: %w", err)
	}
	span.SetAttributes(attribute.Int("logs.count", len(logs)))
	return logs, nil
}

// Visits returns check-ins oldest first, userID 0 meaning every user.
func (r *Repo) Visits(ctx context.Context, userID int) (_ []Visit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.visits")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, check_in_time, COALESCE(duration_minutes, 0)
			FROM check_ins
			WHERE $1::int = 0 OR user_id = $1
			ORDER BY check_in_time;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics visits [query]: %w", err)
	}

	visits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Visit, error) {
		var v Visit
		err := row.Scan(&v.UserID, &v.CheckInTime, &v.DurationMinutes)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("analytics visits [collect rows]: %w", err)
	}
	return visits, nil
}

func (r *Repo) Users(ctx context.Context) (_ []UserRef, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.users")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, role, avatar_color FROM users ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("analytics users [query]: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[UserRef])
	if err != nil {
		return nil, fmt.Errorf("analytics users [collect rows]: %w", err)
	}
	return users, nil
}
