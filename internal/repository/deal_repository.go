package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// dealRepository implements the DealRepository interface using PostgreSQL.
type dealRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDealRepository creates a new PostgreSQL-backed deal repository.
func NewDealRepository(pool *pgxpool.Pool, logger zerolog.Logger) DealRepository {
	return &dealRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "deal").Logger(),
	}
}

// ExistsByDealID reports whether a deal with the given business key is stored.
func (r *dealRepository) ExistsByDealID(ctx context.Context, dealID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM deals WHERE deal_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, dealID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("deal_id", dealID).Msg("failed to check deal existence")
		return false, fmt.Errorf("failed to check deal existence: %w", err)
	}

	return exists, nil
}

// Create inserts a deal, assigning its ID and CreatedAt.
func (r *dealRepository) Create(ctx context.Context, deal *model.Deal) error {
	query := `
		INSERT INTO deals (id, deal_id, from_currency, to_currency, deal_timestamp, amount)
		VALUES ($1, $2, $3, $4, $5, $6::text::numeric)
		RETURNING created_at
	`

	id := uuid.New()
	err := r.pool.QueryRow(ctx, query,
		id,
		deal.DealID,
		deal.FromCurrency,
		deal.ToCurrency,
		deal.Timestamp,
		deal.Amount.String(),
	).Scan(&deal.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("deal_id", deal.DealID).Msg("deal already exists")
			return model.ErrDuplicateDeal.Wrap(err)
		}

		r.logger.Error().
			Err(err).
			Str("deal_id", deal.DealID).
			Msg("failed to create deal")
		return fmt.Errorf("failed to create deal: %w", err)
	}
	deal.ID = id

	r.logger.Debug().
		Str("id", id.String()).
		Str("deal_id", deal.DealID).
		Msg("deal created successfully")

	return nil
}

// GetByDealID retrieves a deal by its business key.
func (r *dealRepository) GetByDealID(ctx context.Context, dealID string) (*model.Deal, error) {
	query := `
		SELECT id, deal_id, from_currency, to_currency, deal_timestamp, amount::text, created_at
		FROM deals
		WHERE deal_id = $1
	`

	var (
		deal   model.Deal
		amount string
	)
	err := r.pool.QueryRow(ctx, query, dealID).Scan(
		&deal.ID,
		&deal.DealID,
		&deal.FromCurrency,
		&deal.ToCurrency,
		&deal.Timestamp,
		&amount,
		&deal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("deal_id", dealID).Msg("deal not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("deal_id", dealID).Msg("failed to get deal")
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	deal.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to decode amount %q for deal %s: %w", amount, dealID, err)
	}

	return &deal, nil
}
