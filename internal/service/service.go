package service

import (
	"context"
	"io"

	"github.com/Zakaria-Tajer/fx/internal/model"
)

// ImportService runs a deal import batch.
type ImportService interface {
	// Import parses, validates and stores the deals in upload.
	// A batch-level rejection returns a *model.DomainError and no result.
	Import(ctx context.Context, upload model.Upload) (*model.ImportResult, error)
}

// DealService reads stored deals.
type DealService interface {
	// GetByDealID retrieves a deal by its business key, or model.ErrDealNotFound.
	GetByDealID(ctx context.Context, dealID string) (*model.Deal, error)
}

// Parser decodes an import file into deals, in file order.
type Parser interface {
	Parse(r io.Reader) ([]model.Deal, error)
}
