package users

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

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO users (name, password_hash, role, avatar_color)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;`,
		user.Name, user.PasswordHash, user.Role, user.AvatarColor,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return &user, nil
}

// Update changes name, role and avatar color; the password hash only when non-empty.
func (r *Repo) Update(ctx context.Context, user *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", user.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET
				name = $1, role = $2, avatar_color = $3,
				password_hash = CASE WHEN $4::text = '' THEN password_hash ELSE $4 END
			WHERE id = $5;`,
		user.Name, user.Role, user.AvatarColor, user.PasswordHash, user.ID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrUserExists
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes the user; sequence, progress, sessions, logs and check-ins cascade.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *Repo) GetByName(ctx context.Context, name string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyname")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("name", name))

	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *Repo) getOne(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRow(
		ctx,
		`SELECT id, name, role, avatar_color, created_at, password_hash FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Role, &u.AvatarColor, &u.CreatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) List(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, role, avatar_color, created_at, password_hash FROM users ORDER BY name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.AvatarColor, &u.CreatedAt, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// EnsureOwner creates the bootstrap owner account if no user with that name exists yet.
func (r *Repo) EnsureOwner(ctx context.Context, name, passwordHash string) (created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.ensureowner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO users (name, password_hash, role, avatar_color)
			VALUES ($1, $2, 'owner', $3)
			ON CONFLICT (name) DO NOTHING;`,
		name, passwordHash, DefaultAvatarColor,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
