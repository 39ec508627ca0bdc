package domain

import (
	"context"
	"fmt"
	"time"
)

type Showtime struct {
	ID       int
	Date     time.Time
	StartsAt time.Time
	EndsAt   time.Time
	MovieID  int
	HallID   int
}

func (s Showtime) Validate() error {
	if !s.StartsAt.Before(s.EndsAt) {
		return fmt.Errorf("showtime start must be before its end")
	}

	return nil
}

// ShowtimeDetail joins a showtime with the hall, cinema and movie it belongs
// to. The purchase workflow and the notification payload are built from it.
type ShowtimeDetail struct {
	Showtime
	Hall       Hall
	MovieTitle string
	CinemaID   int
	CinemaName string
}

type ShowtimeSummary struct {
	ID         int
	Date       time.Time
	StartsAt   time.Time
	EndsAt     time.Time
	MovieID    int
	MovieTitle string
	HallID     int
	HallName   string
	CinemaID   int
	CinemaName string
}

type ShowtimeFilters struct {
	Pagination
	MovieID  int
	CinemaID int
	Date     *time.Time
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int) (*ShowtimeDetail, error)
	GetAll(ctx context.Context, filters ShowtimeFilters) ([]ShowtimeSummary, *Metadata, error)
	Create(ctx context.Context, showtime *Showtime) error
}
