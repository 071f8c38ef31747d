package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const addEntryAttempts = 3

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetSequenceForUser returns the user's entries joined with their exercise, ordered by
// day and sort order. dayNumber 0 returns every day.
func (r *Repo) GetSequenceForUser(ctx context.Context, userID, dayNumber int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.get_for_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber))

	rows, err := r.db.Query(
		ctx,
		`SELECT ws.id, ws.user_id, ws.exercise_id, ws.day_number, ws.sort_order, e.name, e.category
			FROM workout_sequences ws
			JOIN exercises e ON e.id = ws.exercise_id
			WHERE ws.user_id = $1 AND ($2::int = 0 OR ws.day_number = $2)
			ORDER BY ws.day_number, ws.sort_order;`,
		userID, dayNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("sequence [query]: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.UserID, &e.ExerciseID, &e.DayNumber, &e.SortOrder, &e.ExerciseName, &e.ExerciseCategory)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("sequence [collect rows]: %w", err)
	}

	return entries, nil
}

// MaxDay returns the highest day number in the user's plan, 0 when the plan is empty.
func (r *Repo) MaxDay(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.max_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return maxDay(ctx, r.db, userID)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func maxDay(ctx context.Context, q queryRower, userID int) (int, error) {
	var max int
	err := q.QueryRow(
		ctx,
		`SELECT COALESCE(MAX(day_number), 0) FROM workout_sequences WHERE user_id = $1`,
		userID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max day [query row]: %w", err)
	}
	return max, nil
}

// MaxDayTx reads the plan length within an open transaction.
func MaxDayTx(ctx context.Context, tx pgx.Tx, userID int) (int, error) {
	return maxDay(ctx, tx, userID)
}

// ScheduledExerciseIDs returns the exercise ids planned for the day, in sort order.
func (r *Repo) ScheduledExerciseIDs(ctx context.Context, userID, dayNumber int) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.scheduled_ids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("day", dayNumber))

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_id FROM workout_sequences
			WHERE user_id = $1 AND day_number = $2
			ORDER BY sort_order;`,
		userID, dayNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("scheduled ids [query]: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scheduled ids [collect rows]: %w", err)
	}
	return ids, nil
}

// AddEntry appends the exercise at the end of the day. The sort order is computed
// in the same statement: one past the day's highest, or 0 for an empty day.
func (r *Repo) AddEntry(ctx context.Context, userID, exerciseID, dayNumber int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.add_entry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("exercise.id", exerciseID),
		attribute.Int("day", dayNumber),
	)

	entry := &Entry{
		UserID:     userID,
		ExerciseID: exerciseID,
		DayNumber:  dayNumber,
	}
	for attempt := 1; ; attempt++ {
		err = r.db.QueryRow(
			ctx,
			`INSERT INTO workout_sequences (user_id, exercise_id, day_number, sort_order)
				SELECT $1, $2, $3, COALESCE(MAX(sort_order) + 1, 0)
				FROM workout_sequences
				WHERE user_id = $1 AND day_number = $3
				RETURNING id, sort_order;`,
			userID, exerciseID, dayNumber,
		).Scan(&entry.ID, &entry.SortOrder)
		if err == nil {
			return entry, nil
		}

		switch {
		case pkg.IsForeignKeyViolationError(err):
			return nil, ErrUnknownReference
		case pkg.IsUniqueViolationError(err) && attempt < addEntryAttempts:
			// another add to the same day won the slot
			log.Debugf("add sequence entry for user %d day %d: sort order taken, retrying", userID, dayNumber)
			continue
		case pkg.IsUniqueViolationError(err):
			return nil, ErrSortOrderClash
		default:
			return nil, err
		}
	}
}

// RemoveEntry deletes the entry and returns it, so callers know whose plan changed.
func (r *Repo) RemoveEntry(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.remove_entry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Entry
	err = r.db.QueryRow(
		ctx,
		`DELETE FROM workout_sequences WHERE id = $1
			RETURNING id, user_id, exercise_id, day_number, sort_order;`,
		id,
	).Scan(&e.ID, &e.UserID, &e.ExerciseID, &e.DayNumber, &e.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Reorder sets each entry's sort order to its index in entryIDs, all or nothing.
// entryIDs must hold exactly the day's entries.
func (r *Repo) Reorder(ctx context.Context, userID, dayNumber int, entryIDs []int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sequence.reorder")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("day", dayNumber),
		attribute.Int("entries", len(entryIDs)),
	)

	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(
			ctx,
			`SELECT id FROM workout_sequences
				WHERE user_id = $1 AND day_number = $2
				FOR UPDATE;`,
			userID, dayNumber,
		)
		if err != nil {
			return fmt.Errorf("reorder [lock day]: %w", err)
		}
		current, err := pgx.CollectRows(rows, pgx.RowTo[int])
		if err != nil {
			return fmt.Errorf("reorder [collect ids]: %w", err)
		}

		if err := CheckPermutation(current, entryIDs); err != nil {
			return err
		}

		// the unique sort order constraint is deferred, so intermediate clashes are fine
		batch := &pgx.Batch{}
		for i, id := range entryIDs {
			batch.Queue(`UPDATE workout_sequences SET sort_order = $1 WHERE id = $2`, i, id)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("reorder [update batch]: %w", err)
		}
		return nil
	})
	if pkg.IsUniqueViolationError(err) {
		return ErrSortOrderClash
	}
	return err
}
