package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/models"
)

const uniqueViolation = "23505"

// PostgresStore handles user and task CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// NewPool parses dsn, applies the transport mode and pings the database.
func NewPool(ctx context.Context, dsn string, production bool) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	applyTransport(cfg, production)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// applyTransport forces TLS in production and plain connections elsewhere.
// Production TLS does not verify the server chain.
func applyTransport(cfg *pgxpool.Config, production bool) {
	if production {
		if cfg.ConnConfig.TLSConfig == nil {
			cfg.ConnConfig.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		return
	}
	cfg.ConnConfig.TLSConfig = nil
	cfg.ConnConfig.Fallbacks = nil
}

// Migrate creates the users and tasks tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name                VARCHAR(255) NOT NULL,
			email               VARCHAR(255) UNIQUE NOT NULL,
			phone               VARCHAR(50)  NOT NULL DEFAULT '',
			password_hash       VARCHAR(255) NOT NULL,
			children            JSONB        NOT NULL DEFAULT '[]',
			teacher_code        VARCHAR(16)  UNIQUE NOT NULL,
			subscription_status VARCHAR(32)  NOT NULL DEFAULT 'trial',
			trial_start_date    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			created_at          TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id      UUID         NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title        VARCHAR(255) NOT NULL,
			child_name   VARCHAR(255) NOT NULL,
			category     VARCHAR(64)  NOT NULL DEFAULT '',
			due_date     DATE,
			completed    BOOLEAN      NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			points       INTEGER      NOT NULL DEFAULT 10,
			created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS tasks_user_created_idx ON tasks (user_id, created_at DESC);
	`)
	return err
}

const userColumns = `id, name, email, phone, password_hash, children, teacher_code, subscription_status, trial_start_date`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Children, &u.TeacherCode, &u.SubscriptionStatus, &u.TrialStartDate)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts an account. Unique violations come back as
// apperr.ErrEmailTaken or apperr.ErrTeacherCodeTaken.
func (s *PostgresStore) CreateUser(ctx context.Context, nu models.NewUser) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, password_hash, children, teacher_code)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		nu.Name, nu.Email, nu.Phone, nu.PasswordHash, nu.Children, nu.TeacherCode,
	))
	if err != nil {
		return nil, classifyUnique(err)
	}
	return u, nil
}

func classifyUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return fmt.Errorf("create user: %w", err)
	}
	if strings.Contains(pgErr.ConstraintName, "teacher_code") {
		return fmt.Errorf("create user: %w", apperr.ErrTeacherCodeTaken)
	}
	return fmt.Errorf("create user: %w", apperr.ErrEmailTaken)
}

// GetUserByEmail returns (nil, nil) when no account has email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetUserByTeacherCode returns (nil, nil) when no account has code.
func (s *PostgresStore) GetUserByTeacherCode(ctx context.Context, code string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE teacher_code = $1`, code)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
