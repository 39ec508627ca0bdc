package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	GetOccupiedSeatsFunc            func(ctx context.Context, showtimeID int) ([]domain.Seat, error)
	PurchaseFunc                    func(ctx context.Context, order domain.TicketOrder) (*domain.CompletedPurchase, error)
	GetSummariesByUserIdFunc        func(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.TicketSummary, *domain.Metadata, error)
	GetSummariesByRetrievalCodeFunc func(ctx context.Context, codeHash []byte) ([]domain.TicketSummary, error)
}

func (m *MockTicketRepo) GetOccupiedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	return m.GetOccupiedSeatsFunc(ctx, showtimeID)
}

func (m *MockTicketRepo) Purchase(ctx context.Context, order domain.TicketOrder) (*domain.CompletedPurchase, error) {
	return m.PurchaseFunc(ctx, order)
}

func (m *MockTicketRepo) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.TicketSummary, *domain.Metadata, error) {

	return m.GetSummariesByUserIdFunc(ctx, userID, pagination)
}

func (m *MockTicketRepo) GetSummariesByRetrievalCode(ctx context.Context, codeHash []byte) ([]domain.TicketSummary, error) {
	return m.GetSummariesByRetrievalCodeFunc(ctx, codeHash)
}
