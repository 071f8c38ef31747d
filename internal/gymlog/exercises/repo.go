package exercises

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

var ErrUnknownOwner = errors.New("created_for_user_id points to a missing user")

const exerciseColumns = `id, name, category, target_sets, target_reps, target_weight, gif_url, created_for_user_id, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListVisible returns the global exercises plus the ones created for userID.
func (r *Repo) ListVisible(ctx context.Context, userID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_visible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+`
			FROM exercises
			WHERE created_for_user_id IS NULL OR created_for_user_id = $1
			ORDER BY category, name;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list visible exercises [query]: %w", err)
	}
	return collectExercises(rows)
}

func (r *Repo) ListAll(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY category, name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercises [query]: %w", err)
	}
	return collectExercises(rows)
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get exercise [query]: %w", err)
	}
	exercise, err := pgx.CollectExactlyOneRow(rows, scanExercise)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("get exercise [collect]: %w", err)
	}
	return &exercise, nil
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercises (name, category, target_sets, target_reps, target_weight, gif_url, created_for_user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at;`,
		exercise.Name, exercise.Category, exercise.TargetSets, exercise.TargetReps,
		exercise.TargetWeight, exercise.GifURL, exercise.CreatedForUserID,
	).Scan(&exercise.ID, &exercise.CreatedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownOwner
		}
		if pkg.IsCheckViolationError(err) {
			return nil, ErrInvalidExercise
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

func (r *Repo) Update(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercises SET
				name = $1, category = $2, target_sets = $3, target_reps = $4,
				target_weight = $5, gif_url = $6, created_for_user_id = $7
			WHERE id = $8;`,
		exercise.Name, exercise.Category, exercise.TargetSets, exercise.TargetReps,
		exercise.TargetWeight, exercise.GifURL, exercise.CreatedForUserID, exercise.ID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrUnknownOwner
		}
		if pkg.IsCheckViolationError(err) {
			return ErrInvalidExercise
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Delete removes the exercise; sequence entries and logs pointing at it cascade.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func scanExercise(row pgx.CollectableRow) (Exercise, error) {
	var e Exercise
	err := row.Scan(
		&e.ID, &e.Name, &e.Category, &e.TargetSets, &e.TargetReps,
		&e.TargetWeight, &e.GifURL, &e.CreatedForUserID, &e.CreatedAt,
	)
	return e, err
}

func collectExercises(rows pgx.Rows) ([]Exercise, error) {
	exercises, err := pgx.CollectRows(rows, scanExercise)
	if err != nil {
		return nil, fmt.Errorf("exercises [collect rows]: %w", err)
	}
	return exercises, nil
}
