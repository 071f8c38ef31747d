package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/gymlog/sequence"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const progressColumns = `user_id, current_day_number, total_workouts_completed, last_workout_date, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetOrCreate returns the user's progress row, creating it on day 1 when missing.
// Concurrent callers end up with the same single row.
func (r *Repo) GetOrCreate(ctx context.Context, userID int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get_or_create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := ensureRow(ctx, r.db, userID); err != nil {
		return nil, err
	}
	return scanProgress(r.db.QueryRow(ctx, `SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1`, userID))
}

// Advance moves the user to the plan day after fromDay, wrapping to 1 after the last day,
// stamps today as the last workout date and counts the workout. fromDay 0 means the stored
// day. Both are clamped into the current plan first, so a plan that shrank under the user
// continues from the day they were shown. It runs in one transaction with the progress row
// locked. With an empty plan nothing changes and advanced is false.
func (r *Repo) Advance(ctx context.Context, userID, fromDay int, today time.Time) (_ *Progress, advanced bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.advance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("from_day", fromDay))

	var p *Progress
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := ensureRow(ctx, tx, userID); err != nil {
			return err
		}

		current, err := scanProgress(tx.QueryRow(
			ctx,
			`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 FOR UPDATE`,
			userID,
		))
		if err != nil {
			return err
		}

		maxDay, err := sequence.MaxDayTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if maxDay == 0 {
			// empty plan: stay on (or fall back to) day 1, nothing is counted
			if current.CurrentDayNumber != 1 {
				if _, err := tx.Exec(ctx, `UPDATE user_progress SET current_day_number = 1, updated_at = now() WHERE user_id = $1`, userID); err != nil {
					return fmt.Errorf("reset day on empty plan: %w", err)
				}
				current.CurrentDayNumber = 1
			}
			p = current
			return nil
		}

		if fromDay <= 0 {
			fromDay = current.CurrentDayNumber
		}
		next := progression.NextDay(progression.ClampDay(fromDay, maxDay), maxDay)
		p, err = scanProgress(tx.QueryRow(
			ctx,
			`UPDATE user_progress SET
					current_day_number = $2,
					total_workouts_completed = total_workouts_completed + 1,
					last_workout_date = $3,
					updated_at = now()
				WHERE user_id = $1
				RETURNING `+progressColumns+`;`,
			userID, next, today,
		))
		if err != nil {
			return err
		}
		p.MaxDay = maxDay
		advanced = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	span.SetAttributes(attribute.Int("day", p.CurrentDayNumber), attribute.Bool("advanced", advanced))
	return p, advanced, nil
}

// SetDay overrides the current day. The day must be at least 1 and, once a plan exists,
// not past its last day.
func (r *Repo) SetDay(ctx context.Context, userID, dayNumber int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.set_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber))

	if dayNumber < 1 {
		return nil, ErrDayOutOfRange
	}

	var p *Progress
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		maxDay, err := sequence.MaxDayTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if maxDay > 0 && dayNumber > maxDay {
			return ErrDayOutOfRange
		}

		p, err = scanProgress(tx.QueryRow(
			ctx,
			`INSERT INTO user_progress (user_id, current_day_number) VALUES ($1, $2)
				ON CONFLICT (user_id) DO UPDATE SET
					current_day_number = EXCLUDED.current_day_number,
					updated_at = now()
				RETURNING `+progressColumns+`;`,
			userID, dayNumber,
		))
		if err != nil {
			return err
		}
		p.MaxDay = maxDay
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Reset puts the user back on day 1 with no completed workouts.
func (r *Repo) Reset(ctx context.Context, userID int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return scanProgress(r.db.QueryRow(
		ctx,
		`INSERT INTO user_progress (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET
				current_day_number = 1,
				total_workouts_completed = 0,
				last_workout_date = NULL,
				updated_at = now()
			RETURNING `+progressColumns+`;`,
		userID,
	))
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func ensureRow(ctx context.Context, e execer, userID int) error {
	_, err := e.Exec(
		ctx,
		`INSERT INTO user_progress (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrUnknownUser
		}
		return fmt.Errorf("ensure progress row: %w", err)
	}
	return nil
}

func scanProgress(row pgx.Row) (*Progress, error) {
	var p Progress
	err := row.Scan(&p.UserID, &p.CurrentDayNumber, &p.TotalWorkoutsCompleted, &p.LastWorkoutDate, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &p, nil
}
