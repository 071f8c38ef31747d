package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const sessionColumns = `id, user_id, day_number, exercises_completed, is_complete, started_at, completed_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// FindOpen returns the most recent incomplete session for the day, or nil when there is none.
func (r *Repo) FindOpen(ctx context.Context, userID, dayNumber int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.find_open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber))

	s, err := scanSession(r.db.QueryRow(
		ctx,
		`SELECT `+sessionColumns+`
			FROM workout_sessions
			WHERE user_id = $1 AND day_number = $2 AND NOT is_complete
			ORDER BY started_at DESC
			LIMIT 1;`,
		userID, dayNumber,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// Create opens a new session. ErrOpenSessionExists means another request opened one first.
func (r *Repo) Create(ctx context.Context, userID, dayNumber int, completed []int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber))

	if completed == nil {
		completed = []int{}
	}

	s, err := scanSession(r.db.QueryRow(
		ctx,
		`INSERT INTO workout_sessions (user_id, day_number, exercises_completed)
			VALUES ($1, $2, $3)
			RETURNING `+sessionColumns+`;`,
		userID, dayNumber, completed,
	))
	if err != nil {
		switch {
		case pkg.IsUniqueViolationError(err):
			return nil, ErrOpenSessionExists
		case pkg.IsForeignKeyViolationError(err):
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return s, nil
}

// AddExercise puts the exercise into the open session's completed set; adding twice is a no-op.
func (r *Repo) AddExercise(ctx context.Context, sessionID, exerciseID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID), attribute.Int("exercise.id", exerciseID))

	return r.updateOpen(ctx, sessionID, `exercises_completed = CASE
			WHEN $2 = ANY (exercises_completed) THEN exercises_completed
			ELSE array_append(exercises_completed, $2)
		END`, exerciseID)
}

// RemoveExercise takes the exercise out of the open session's completed set.
func (r *Repo) RemoveExercise(ctx context.Context, sessionID, exerciseID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.remove_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID), attribute.Int("exercise.id", exerciseID))

	return r.updateOpen(ctx, sessionID, `exercises_completed = array_remove(exercises_completed, $2)`, exerciseID)
}

func (r *Repo) updateOpen(ctx context.Context, sessionID int, set string, exerciseID int) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(
		ctx,
		`UPDATE workout_sessions SET `+set+`
			WHERE id = $1 AND NOT is_complete
			RETURNING `+sessionColumns+`;`,
		sessionID, exerciseID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionClosed
	}
	return s, err
}

// Close marks the session complete and returns the closed row. Only the first caller gets
// the row; later or concurrent calls find it already complete and get nil.
func (r *Repo) Close(ctx context.Context, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.close")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	closed, err := scanSession(r.db.QueryRow(
		ctx,
		`UPDATE workout_sessions SET is_complete = true, completed_at = now()
			WHERE id = $1 AND is_complete = false
			RETURNING `+sessionColumns+`;`,
		sessionID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetAttributes(attribute.Bool("closed", false))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("closed", true))
	return closed, nil
}

// List returns the user's sessions newest first. dayNumber 0 means every day.
func (r *Repo) List(ctx context.Context, userID, dayNumber, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber), attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+`
			FROM workout_sessions
			WHERE user_id = $1 AND ($2::int = 0 OR day_number = $2)
			ORDER BY started_at DESC
			LIMIT $3;`,
		userID, dayNumber, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sessions [query]: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		s, err := scanSession(row)
		if err != nil {
			return Session{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sessions [collect rows]: %w", err)
	}
	return sessions, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.UserID, &s.DayNumber, &s.ExercisesCompleted, &s.IsComplete, &s.StartedAt, &s.CompletedAt)
	if err != nil {
		return nil, err
	}
	if s.ExercisesCompleted == nil {
		s.ExercisesCompleted = []int{}
	}
	return &s, nil
}
