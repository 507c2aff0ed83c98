package service

import (
	"context"
	"fmt"

	"github.com/Zakaria-Tajer/fx/internal/model"
	"github.com/Zakaria-Tajer/fx/internal/repository"

	"github.com/rs/zerolog"
)

// dealService implements DealService.
type dealService struct {
	repo   repository.DealRepository
	logger zerolog.Logger
}

// NewDealService creates a new deal service.
func NewDealService(repo repository.DealRepository, logger zerolog.Logger) DealService {
	return &dealService{
		repo:   repo,
		logger: logger.With().Str("service", "deal").Logger(),
	}
}

// GetByDealID retrieves a deal by its business key.
func (s *dealService) GetByDealID(ctx context.Context, dealID string) (*model.Deal, error) {
	deal, err := s.repo.GetByDealID(ctx, dealID)
	if err != nil {
		s.logger.Error().Err(err).Str("deal_id", dealID).Msg("failed to get deal")
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	if deal == nil {
		s.logger.Debug().Str("deal_id", dealID).Msg("deal not found")
		return nil, model.ErrDealNotFound
	}

	return deal, nil
}
