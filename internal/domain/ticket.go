package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus is stored as a small integer with a fixed mapping.
type TicketStatus int

const (
	TicketReserved  TicketStatus = 0
	TicketPaid      TicketStatus = 1
	TicketCancelled TicketStatus = 2
)

var ticketStatusNames = map[TicketStatus]string{
	TicketReserved:  "RESERVED",
	TicketPaid:      "PAID",
	TicketCancelled: "CANCELLED",
}

func (s TicketStatus) String() string {
	name, ok := ticketStatusNames[s]
	if !ok {
		return fmt.Sprintf("TicketStatus(%d)", int(s))
	}

	return name
}

func TicketStatusFromInt(v int) (TicketStatus, error) {
	s := TicketStatus(v)
	if _, ok := ticketStatusNames[s]; !ok {
		return 0, fmt.Errorf("ticket status %d: %w", v, ErrUnknownStatus)
	}

	return s, nil
}

// Occupies reports whether a ticket in this status holds its seat. Cancelled
// tickets release the seat.
func (s TicketStatus) Occupies() bool {
	return s == TicketReserved || s == TicketPaid
}

type Ticket struct {
	ID              int
	Seat            Seat
	Price           decimal.Decimal
	Status          TicketStatus
	MovieID         int
	ShowtimeID      int
	HallID          int
	PaymentID       int
	UserID          *int
	AnonymousUserID *int
	CreatedAt       time.Time
}

// GuestContact carries the purchaser details for an account-less purchase.
// The retrieval code hash is persisted; the plaintext goes out once, by mail.
type GuestContact struct {
	Name              string
	Email             string
	RetrievalCodeHash []byte
}

// TicketOrder is the unit the purchase workflow hands to storage: one payment
// and one ticket per seat, inserted atomically.
type TicketOrder struct {
	ShowtimeID int
	MovieID    int
	HallID     int
	UserID     *int
	Guest      *GuestContact
	Seats      []Seat
	UnitPrice  decimal.Decimal
}

func (o TicketOrder) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(len(o.Seats))))
}

type CompletedPurchase struct {
	Payment Payment
	Tickets []Ticket
}

type TicketSummary struct {
	TicketID   int
	Seat       Seat
	Price      decimal.Decimal
	Status     TicketStatus
	MovieTitle string
	CinemaName string
	HallName   string
	Date       time.Time
	StartsAt   time.Time
	EndsAt     time.Time
	CreatedAt  time.Time
}

type TicketRepository interface {
	// GetOccupiedSeats returns every seat held by a RESERVED or PAID ticket
	// for the showtime, ordered by row letter then seat number.
	GetOccupiedSeats(ctx context.Context, showtimeID int) ([]Seat, error)

	// Purchase re-checks occupancy and inserts the payment plus tickets in a
	// single transaction. It returns ErrSeatAlreadyTaken when any requested
	// seat is held, creating nothing.
	Purchase(ctx context.Context, order TicketOrder) (*CompletedPurchase, error)

	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]TicketSummary, *Metadata, error)
	GetSummariesByRetrievalCode(ctx context.Context, codeHash []byte) ([]TicketSummary, error)
}
