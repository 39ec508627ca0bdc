package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
)

type MockCinemaRepo struct {
	domain.CinemaRepository
	GetAllFunc  func(ctx context.Context, filters domain.CinemaFilters) ([]*domain.Cinema, *domain.Metadata, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Cinema, error)
}

func (m *MockCinemaRepo) GetAll(
	ctx context.Context,
	filters domain.CinemaFilters) ([]*domain.Cinema, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}

func (m *MockCinemaRepo) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	return m.GetByIdFunc(ctx, id)
}
