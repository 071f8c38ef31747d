package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// migrations are applied in order, each one is idempotent
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users
	(
		id            SERIAL PRIMARY KEY,
		name          VARCHAR     NOT NULL UNIQUE,
		password_hash VARCHAR     NOT NULL,
		role          VARCHAR     NOT NULL DEFAULT 'user' CHECK (role IN ('owner', 'user')),
		avatar_color  VARCHAR     NOT NULL DEFAULT '#3b82f6',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS exercises
	(
		id                  SERIAL PRIMARY KEY,
		name                VARCHAR          NOT NULL,
		category            VARCHAR          NOT NULL CHECK (category IN ('back', 'chest', 'shoulder', 'leg', 'arm')),
		target_sets         INTEGER          NOT NULL DEFAULT 3 CHECK (target_sets >= 0),
		target_reps         INTEGER          NOT NULL DEFAULT 10 CHECK (target_reps >= 0),
		target_weight       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (target_weight >= 0),
		gif_url             VARCHAR          NOT NULL DEFAULT '',
		created_for_user_id INTEGER REFERENCES users (id) ON DELETE CASCADE,
		created_at          TIMESTAMPTZ      NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_exercises_created_for_user_id ON exercises (created_for_user_id)`,

	// sort_order uniqueness is checked at commit, so a reorder can permute rows one by one inside a tx
	`CREATE TABLE IF NOT EXISTS workout_sequences
	(
		id          SERIAL PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		exercise_id INTEGER NOT NULL REFERENCES exercises (id) ON DELETE CASCADE,
		day_number  INTEGER NOT NULL CHECK (day_number >= 1),
		sort_order  INTEGER NOT NULL DEFAULT 0 CHECK (sort_order >= 0),
		CONSTRAINT workout_sequences_day_order_key
			UNIQUE (user_id, day_number, sort_order) DEFERRABLE INITIALLY DEFERRED
	)`,
	`CREATE INDEX IF NOT EXISTS ix_workout_sequences_user_day ON workout_sequences (user_id, day_number)`,

	`CREATE TABLE IF NOT EXISTS user_progress
	(
		user_id                  INTEGER PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
		current_day_number       INTEGER     NOT NULL DEFAULT 1 CHECK (current_day_number >= 1),
		total_workouts_completed INTEGER     NOT NULL DEFAULT 0 CHECK (total_workouts_completed >= 0),
		last_workout_date        DATE,
		updated_at               TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS workout_sessions
	(
		id                  SERIAL PRIMARY KEY,
		user_id             INTEGER     NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		day_number          INTEGER     NOT NULL CHECK (day_number >= 1),
		exercises_completed INTEGER[]   NOT NULL DEFAULT '{}',
		is_complete         BOOLEAN     NOT NULL DEFAULT false,
		started_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at        TIMESTAMPTZ
	)`,
	// at most one open session per (user, day)
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_workout_sessions_open
		ON workout_sessions (user_id, day_number) WHERE NOT is_complete`,

	`CREATE TABLE IF NOT EXISTS workout_logs
	(
		id          SERIAL PRIMARY KEY,
		user_id     INTEGER          NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		exercise_id INTEGER          NOT NULL REFERENCES exercises (id) ON DELETE CASCADE,
		date        DATE             NOT NULL DEFAULT CURRENT_DATE,
		actual_sets INTEGER          NOT NULL DEFAULT 0 CHECK (actual_sets >= 0),
		actual_reps INTEGER          NOT NULL DEFAULT 0 CHECK (actual_reps >= 0),
		weight      DOUBLE PRECISION NOT NULL DEFAULT 0,
		sets_data   JSONB            NOT NULL DEFAULT '[]',
		created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_workout_logs_user_date ON workout_logs (user_id, date)`,
	// one log per exercise per day, saving again updates it
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_workout_logs_user_exercise_date ON workout_logs (user_id, exercise_id, date)`,

	`CREATE TABLE IF NOT EXISTS check_ins
	(
		id               SERIAL PRIMARY KEY,
		user_id          INTEGER     NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		check_in_time    TIMESTAMPTZ NOT NULL DEFAULT now(),
		check_out_time   TIMESTAMPTZ,
		duration_minutes INTEGER CHECK (duration_minutes >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_check_ins_user_time ON check_ins (user_id, check_in_time)`,
	// a user is checked in at most once at a time
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_check_ins_open ON check_ins (user_id) WHERE check_out_time IS NULL`,
}

// Migrate creates the gymlog schema. Safe to call on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return InTx(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range migrations {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i, err)
			}
		}
		log.Debugf("db migrations applied: %d", len(migrations))
		return nil
	})
}
