package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Cinema struct {
	ID      int
	Name    string
	City    string
	Address string
	Halls   []Hall
}

// Hall is a physical auditorium. Seats are not persisted; the (letter, number)
// grid is derived from RowCount and ColCount.
type Hall struct {
	ID        int
	CinemaID  int
	Name      string
	RowCount  int
	ColCount  int
	IsSpecial bool
	BasePrice decimal.Decimal
}

func (h Hall) Capacity() int {
	return h.RowCount * h.ColCount
}

// HasSeat reports whether the seat falls inside the hall's grid.
func (h Hall) HasSeat(s Seat) bool {
	row, ok := rowIndex(s.Letter)
	if !ok {
		return false
	}

	return row < h.RowCount && s.Number >= 1 && s.Number <= h.ColCount
}

// Seats enumerates the hall's grid row by row: A1..A<cols>, B1.. and so on.
func (h Hall) Seats() []Seat {
	seats := make([]Seat, 0, h.Capacity())

	for row := 0; row < h.RowCount; row++ {
		for col := 1; col <= h.ColCount; col++ {
			seats = append(seats, Seat{Letter: RowLetter(row), Number: col})
		}
	}

	return seats
}

type CinemaFilters struct {
	Pagination
	City string
}

type CinemaRepository interface {
	GetAll(ctx context.Context, filters CinemaFilters) ([]*Cinema, *Metadata, error)
	GetById(ctx context.Context, id int) (*Cinema, error)
}
