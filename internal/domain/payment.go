package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is stored as a small integer with a fixed mapping.
type PaymentStatus int

const (
	PaymentPending PaymentStatus = 0
	PaymentSuccess PaymentStatus = 1
	PaymentFailed  PaymentStatus = 2
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending: "PENDING",
	PaymentSuccess: "SUCCESS",
	PaymentFailed:  "FAILED",
}

func (s PaymentStatus) String() string {
	name, ok := paymentStatusNames[s]
	if !ok {
		return fmt.Sprintf("PaymentStatus(%d)", int(s))
	}

	return name
}

func PaymentStatusFromInt(v int) (PaymentStatus, error) {
	s := PaymentStatus(v)
	if _, ok := paymentStatusNames[s]; !ok {
		return 0, fmt.Errorf("payment status %d: %w", v, ErrUnknownStatus)
	}

	return s, nil
}

// Payment groups the tickets created by a single purchase. Tickets cascade
// with their payment at the storage layer.
type Payment struct {
	ID              int
	Reference       uuid.UUID
	UserID          *int
	AnonymousUserID *int
	Amount          decimal.Decimal
	Status          PaymentStatus
	CreatedAt       time.Time
}
