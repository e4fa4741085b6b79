package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/apply-assistant/internal/types"
)

const createProfilesTable = `CREATE TABLE IF NOT EXISTS profiles (
	user_id    UUID PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PGStore keeps one user's profile as a JSONB row in PostgreSQL.
type PGStore struct {
	pool   *pgxpool.Pool
	userID uuid.UUID
}

// Connect establishes a connection pool, verifies it, and ensures the profiles table exists.
func Connect(ctx context.Context, databaseURL string, userID uuid.UUID) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createProfilesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create profiles table: %w", err)
	}

	return &PGStore{pool: pool, userID: userID}, nil
}

// Close closes the connection pool
func (s *PGStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UserID returns the id of the profile row this store reads and writes.
func (s *PGStore) UserID() uuid.UUID {
	return s.userID
}

// Get loads the profile, returning a default profile when no row exists.
func (s *PGStore) Get(ctx context.Context) (*types.Profile, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM profiles WHERE user_id = $1`,
		s.userID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.NewProfile(), nil
		}
		return nil, &LoadError{Source: "postgres", Message: "query failed", Cause: err}
	}

	p := types.NewProfile()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, &LoadError{Source: "postgres", Message: "invalid profile document", Cause: err}
	}
	p.Normalize()
	return p, nil
}

// Save upserts the profile row.
func (s *PGStore) Save(ctx context.Context, p *types.Profile) error {
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = NOW()`,
		s.userID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Update applies fn inside a transaction that holds the profile row lock,
// so concurrent writers from any process are serialized.
func (s *PGStore) Update(ctx context.Context, fn func(p *types.Profile) error) (*types.Profile, error) {
	defaults, err := json.Marshal(types.NewProfile())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The row must exist for FOR UPDATE to lock it.
	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (user_id, data) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		s.userID, defaults,
	); err != nil {
		return nil, fmt.Errorf("failed to create profile row: %w", err)
	}

	var data []byte
	if err := tx.QueryRow(ctx,
		`SELECT data FROM profiles WHERE user_id = $1 FOR UPDATE`,
		s.userID,
	).Scan(&data); err != nil {
		return nil, &LoadError{Source: "postgres", Message: "query failed", Cause: err}
	}

	p := types.NewProfile()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, &LoadError{Source: "postgres", Message: "invalid profile document", Cause: err}
	}
	p.Normalize()

	if err := fn(p); err != nil {
		return nil, err
	}
	p.Normalize()

	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE profiles SET data = $2, updated_at = NOW() WHERE user_id = $1`,
		s.userID, jsonBytes,
	); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit profile update: %w", err)
	}
	return p, nil
}

// Delete removes the profile row.
func (s *PGStore) Delete(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, s.userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
