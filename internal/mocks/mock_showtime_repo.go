package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	GetByIdFunc func(ctx context.Context, id int) (*domain.ShowtimeDetail, error)
	GetAllFunc  func(ctx context.Context, filters domain.ShowtimeFilters) ([]domain.ShowtimeSummary, *domain.Metadata, error)
	CreateFunc  func(ctx context.Context, showtime *domain.Showtime) error
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetAll(
	ctx context.Context,
	filters domain.ShowtimeFilters) ([]domain.ShowtimeSummary, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	return m.CreateFunc(ctx, showtime)
}
