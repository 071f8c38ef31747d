package checkins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const checkInColumns = `id, user_id, check_in_time, check_out_time, duration_minutes`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// FindOpen returns the user's open check-in, or nil when the user is not checked in.
func (r *Repo) FindOpen(ctx context.Context, userID int) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.find_open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	c, err := scanCheckIn(r.db.QueryRow(
		ctx,
		`SELECT `+checkInColumns+`
			FROM check_ins
			WHERE user_id = $1 AND check_out_time IS NULL
			ORDER BY check_in_time DESC
			LIMIT 1;`,
		userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *Repo) Create(ctx context.Context, userID int, at time.Time) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	c, err := scanCheckIn(r.db.QueryRow(
		ctx,
		`INSERT INTO check_ins (user_id, check_in_time) VALUES ($1, $2) RETURNING `+checkInColumns+`;`,
		userID, at,
	))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrOpenCheckInExists
		}
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return c, nil
}

// Close checks the user out of the given check-in. A check-in closed meanwhile gives ErrNoOpenCheckIn.
func (r *Repo) Close(ctx context.Context, id int, at time.Time, durationMinutes int) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.close")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id), attribute.Int("duration.minutes", durationMinutes))

	c, err := scanCheckIn(r.db.QueryRow(
		ctx,
		`UPDATE check_ins SET check_out_time = $2, duration_minutes = $3
			WHERE id = $1 AND check_out_time IS NULL
			RETURNING `+checkInColumns+`;`,
		id, at, durationMinutes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoOpenCheckIn
	}
	return c, err
}

// List returns the user's check-ins newest first. from and to are inclusive dates, nil means unbounded.
func (r *Repo) List(ctx context.Context, userID int, from, to *time.Time) (_ []CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+checkInColumns+`
			FROM check_ins
			WHERE user_id = $1
				AND ($2::date IS NULL OR check_in_time >= $2::date)
				AND ($3::date IS NULL OR check_in_time < $3::date + 1)
			ORDER BY check_in_time DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("check-ins [query]: %w", err)
	}

	checkIns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CheckIn, error) {
		c, err := scanCheckIn(row)
		if err != nil {
			return CheckIn{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("check-ins [collect rows]: %w", err)
	}
	return checkIns, nil
}

func scanCheckIn(row pgx.Row) (*CheckIn, error) {
	var c CheckIn
	if err := row.Scan(&c.ID, &c.UserID, &c.CheckInTime, &c.CheckOutTime, &c.DurationMinutes); err != nil {
		return nil, err
	}
	return &c, nil
}
