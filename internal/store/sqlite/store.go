package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/atbot/internal/store"
)

type profileRow struct {
	Nickname    string    `db:"nickname"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Store implements store.Store on a sqlx database.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore wraps a connected, migrated database.
func NewStore(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		db:     db,
		logger: logger.With("component", "sqlite_store"),
	}
}

// Open connects to dbPath, applies migrations and returns the store.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	return NewStore(db, logger), nil
}

// Load retrieves the profile stored under key.
func (s *Store) Load(ctx context.Context, key string) (*store.Profile, error) {
	if ctx.Err() != nil {
		return nil, store.ReadError(key, ctx.Err())
	}

	var row profileRow
	err := s.db.GetContext(ctx, &row,
		`SELECT nickname, description, created_at, updated_at FROM profiles WHERE nickname = ?`, key)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No profile found", "key", key)
		return nil, store.NotFound(key)

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching profile", "key", key, "error", err)
		return nil, store.ReadError(key, err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting profile", "key", key, "error", err)
		return nil, store.ReadError(key, fmt.Errorf("failed to get profile: %w", err))
	}

	return &store.Profile{Nickname: row.Nickname, Description: row.Description}, nil
}

// Save inserts or replaces the profile for p.Nickname inside a transaction.
func (s *Store) Save(ctx context.Context, p *store.Profile) error {
	if p == nil {
		return store.WriteError("", fmt.Errorf("cannot save nil profile"))
	}
	key := p.Nickname
	if key == "" {
		return store.WriteError(key, fmt.Errorf("profile must have a nickname"))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving profile", "key", key, "error", err)
		return store.WriteError(key, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	now := time.Now().UTC()
	row := profileRow{Nickname: key, Description: p.Description, CreatedAt: now, UpdatedAt: now}

	query := `
		INSERT INTO profiles (nickname, description, created_at, updated_at)
		VALUES (:nickname, :description, :created_at, :updated_at)
		ON CONFLICT(nickname) DO UPDATE SET
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	result, err := tx.NamedExecContext(ctx, query, row)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving profile", "key", key, "error", err)
		return store.WriteError(key, fmt.Errorf("failed to save profile: %w", err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when saving profile", "key", key, "affected", affected)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "key", key, "error", err)
		return store.WriteError(key, fmt.Errorf("failed to commit transaction: %w", err))
	}
	tx = nil

	s.logger.DebugContext(ctx, "Profile saved successfully", "key", key)
	return nil
}

// RunMaintenance compacts the database file.
func (s *Store) RunMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing database connection", "error", err)
		return err
	}
	s.logger.Info("Database connection closed successfully.")
	return nil
}
