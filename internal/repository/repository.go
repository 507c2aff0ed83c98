package repository

import (
	"context"

	"github.com/Zakaria-Tajer/fx/internal/model"
)

// DealRepository defines the interface for deal data access operations.
type DealRepository interface {
	// ExistsByDealID reports whether a deal with the given business key is stored.
	ExistsByDealID(ctx context.Context, dealID string) (bool, error)

	// Create inserts a deal, assigning its ID and CreatedAt.
	// Returns model.ErrDuplicateDeal when the business key is already taken.
	Create(ctx context.Context, deal *model.Deal) error

	// GetByDealID retrieves a deal by its business key.
	// Returns nil without error when no such deal exists.
	GetByDealID(ctx context.Context, dealID string) (*model.Deal, error)
}
