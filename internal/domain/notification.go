package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseConfirmation is the payload handed to the notification collaborator
// after a successful purchase. Delivery is out of band; a failed send never
// affects the purchase outcome.
type PurchaseConfirmation struct {
	Recipient     string
	RecipientName string
	MovieTitle    string
	CinemaName    string
	HallName      string
	Date          time.Time
	StartsAt      time.Time
	EndsAt        time.Time
	Seats         []Seat
	TotalPrice    decimal.Decimal
	// RetrievalCode is set for guest purchases only.
	RetrievalCode string
}
