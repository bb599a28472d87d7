package directory

import (
	"context"
	"errors"
	"fmt"

	"campus-eats/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgDirectory implements Directory against the users table.
type pgDirectory struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPgDirectory creates a new PostgreSQL-backed user directory accessor.
func NewPgDirectory(pool *pgxpool.Pool, logger zerolog.Logger) Directory {
	return &pgDirectory{
		pool:   pool,
		logger: logger.With().Str("component", "directory").Logger(),
	}
}

// GetRole returns the role recorded for the given user.
func (d *pgDirectory) GetRole(ctx context.Context, userID string) (model.Role, error) {
	query := `SELECT role FROM users WHERE id = $1`

	var role string
	err := d.pool.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			d.logger.Debug().Str("user_id", userID).Msg("user not found")
			return "", model.ErrForbidden
		}
		if ctx.Err() != nil {
			return "", model.ErrUnavailable
		}
		d.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query user role")
		return "", fmt.Errorf("failed to query user role: %w", err)
	}

	return model.Role(role), nil
}
