package workoutlogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const logSelect = `SELECT wl.id, wl.user_id, wl.exercise_id, e.name, e.category, wl.date,
		wl.actual_sets, wl.actual_reps, wl.weight, wl.sets_data, wl.created_at
	FROM workout_logs wl
	JOIN exercises e ON e.id = wl.exercise_id`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the user's logs, newest first.
func (r *Repo) List(ctx context.Context, userID int, filter Filter) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlogs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("exercise.id", filter.ExerciseID))

	rows, err := r.db.Query(
		ctx,
		logSelect+`
			WHERE wl.user_id = $1
				AND ($2::int = 0 OR wl.exercise_id = $2)
				AND ($3::date IS NULL OR wl.date = $3)
			ORDER BY wl.created_at DESC, wl.id DESC;`,
		userID, filter.ExerciseID, filter.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("list workout logs [query]: %w", err)
	}

	logs, err := pgx.CollectRows(rows, scanLog)
	if err != nil {
		return nil, fmt.Errorf("list workout logs [collect rows]: %w", err)
	}
	return logs, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlogs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, logSelect+` WHERE wl.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get workout log [query]: %w", err)
	}
	wl, err := pgx.CollectExactlyOneRow(rows, scanLog)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("get workout log [collect]: %w", err)
	}
	return &wl, nil
}

// Save writes the user's log for the exercise on that date, updating the existing one
// if the exercise was already logged that day. created reports whether a new row was made.
func (r *Repo) Save(ctx context.Context, userID, exerciseID int, date time.Time, values Values) (_ *WorkoutLog, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlogs.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("exercise.id", exerciseID))

	setsData, err := json.Marshal(nonNilSets(values.SetsData))
	if err != nil {
		return nil, false, fmt.Errorf("marshal sets data: %w", err)
	}

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_logs (user_id, exercise_id, date, actual_sets, actual_reps, weight, sets_data)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, exercise_id, date) DO UPDATE SET
				actual_sets = EXCLUDED.actual_sets,
				actual_reps = EXCLUDED.actual_reps,
				weight = EXCLUDED.weight,
				sets_data = EXCLUDED.sets_data
			RETURNING id, (xmax = 0);`,
		userID, exerciseID, date, values.ActualSets, values.ActualReps, values.Weight, setsData,
	).Scan(&id, &created)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, false, ErrUnknownReference
		}
		if pkg.IsCheckViolationError(err) {
			return nil, false, ErrInvalidLog
		}
		return nil, false, fmt.Errorf("save workout log: %w", err)
	}
	span.SetAttributes(attribute.Int("log.id", id))

	wl, err := r.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return wl, created, nil
}

// Update overwrites the log's numbers. Nil sets data keeps the stored sets.
func (r *Repo) Update(ctx context.Context, id int, values Values) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlogs.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var setsData []byte
	if values.SetsData != nil {
		if setsData, err = json.Marshal(values.SetsData); err != nil {
			return nil, fmt.Errorf("marshal sets data: %w", err)
		}
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_logs SET
				actual_sets = $1, actual_reps = $2, weight = $3,
				sets_data = COALESCE($4::jsonb, sets_data)
			WHERE id = $5;`,
		values.ActualSets, values.ActualReps, values.Weight, setsData, id,
	)
	if err != nil {
		if pkg.IsCheckViolationError(err) {
			return nil, ErrInvalidLog
		}
		return nil, fmt.Errorf("update workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrLogNotFound
	}

	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlogs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

func scanLog(row pgx.CollectableRow) (WorkoutLog, error) {
	var (
		wl       WorkoutLog
		setsData []byte
	)
	err := row.Scan(
		&wl.ID, &wl.UserID, &wl.ExerciseID, &wl.ExerciseName, &wl.ExerciseCategory, &wl.Date,
		&wl.ActualSets, &wl.ActualReps, &wl.Weight, &setsData, &wl.CreatedAt,
	)
	if err != nil {
		return wl, err
	}
	if err := json.Unmarshal(setsData, &wl.SetsData); err != nil {
		return wl, fmt.Errorf("unmarshal sets data of log %d: %w", wl.ID, err)
	}
	wl.SetsData = nonNilSets(wl.SetsData)
	return wl, nil
}

func nonNilSets(sets []SetData) []SetData {
	if sets == nil {
		return []SetData{}
	}
	return sets
}
