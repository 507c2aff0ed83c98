package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDealRepository is a mock implementation of DealRepository.
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) ExistsByDealID(ctx context.Context, dealID string) (bool, error) {
	args := m.Called(ctx, dealID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDealRepository) Create(ctx context.Context, deal *model.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByDealID(ctx context.Context, dealID string) (*model.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Deal), args.Error(1)
}

// MockDealValidator is a mock implementation of DealValidator.
type MockDealValidator struct {
	mock.Mock
}

func (m *MockDealValidator) Validate(deal model.Deal) error {
	args := m.Called(deal)
	return args.Error(0)
}

// MockParser is a mock implementation of Parser.
type MockParser struct {
	mock.Mock
}

func (m *MockParser) Parse(r io.Reader) ([]model.Deal, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Deal), args.Error(1)
}

// memRepository is an in-memory DealRepository keyed by deal id.
type memRepository struct {
	mu    sync.Mutex
	deals map[string]model.Deal
}

func newMemRepository(existing ...string) *memRepository {
	r := &memRepository{deals: make(map[string]model.Deal)}
	for _, id := range existing {
		r.deals[id] = model.Deal{ID: uuid.New(), DealID: id}
	}
	return r
}

func (r *memRepository) ExistsByDealID(ctx context.Context, dealID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.deals[dealID]
	return ok, nil
}

func (r *memRepository) Create(ctx context.Context, deal *model.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deals[deal.DealID]; ok {
		return model.ErrDuplicateDeal
	}
	deal.ID = uuid.New()
	deal.CreatedAt = time.Now()
	r.deals[deal.DealID] = *deal
	return nil
}

func (r *memRepository) GetByDealID(ctx context.Context, dealID string) (*model.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deal, ok := r.deals[dealID]
	if !ok {
		return nil, nil
	}
	return &deal, nil
}
