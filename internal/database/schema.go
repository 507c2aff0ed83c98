package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the deals table. amount is unscaled NUMERIC so any positive
// decimal is stored exactly. The unique index on deal_id is what
// settles concurrent imports of the same deal.
const Schema = `
	CREATE TABLE IF NOT EXISTS deals (
		id             UUID PRIMARY KEY,
		deal_id        TEXT NOT NULL,
		from_currency  CHAR(3) NOT NULL,
		to_currency    CHAR(3) NOT NULL,
		deal_timestamp TIMESTAMP NOT NULL,
		amount         NUMERIC NOT NULL CHECK (amount > 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS deals_deal_id_key ON deals (deal_id);
`

// EnsureSchema applies Schema. It is idempotent and safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply deals schema")
		return fmt.Errorf("failed to apply deals schema: %w", err)
	}

	logger.Info().Msg("deals schema ready")
	return nil
}
