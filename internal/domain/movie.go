package domain

import (
	"context"
	"fmt"
	"time"
)

// MovieStatus is stored as a small integer. The mapping below is the stable
// on-disk contract; never renumber existing values, only append.
type MovieStatus int

const (
	MovieComingSoon MovieStatus = 0
	MovieInTheaters MovieStatus = 1
	MovieEnded      MovieStatus = 2
)

var movieStatusNames = map[MovieStatus]string{
	MovieComingSoon: "COMING_SOON",
	MovieInTheaters: "IN_THEATERS",
	MovieEnded:      "ENDED",
}

func (s MovieStatus) String() string {
	name, ok := movieStatusNames[s]
	if !ok {
		return fmt.Sprintf("MovieStatus(%d)", int(s))
	}

	return name
}

// MovieStatusFromInt decodes a stored status value. An unmapped integer means
// the row is corrupt, not that a new status silently appeared.
func MovieStatusFromInt(v int) (MovieStatus, error) {
	s := MovieStatus(v)
	if _, ok := movieStatusNames[s]; !ok {
		return 0, fmt.Errorf("movie status %d: %w", v, ErrUnknownStatus)
	}

	return s, nil
}

func MovieStatusFromName(name string) (MovieStatus, error) {
	for s, n := range movieStatusNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("movie status %q: %w", name, ErrUnknownStatus)
}

type Movie struct {
	ID          int
	Title       string
	Summary     string
	Status      MovieStatus
	Language    string
	Duration    int
	ReleaseDate time.Time
	PosterUrl   string
	CreatedAt   time.Time
}

type MovieFilters struct {
	Pagination
	Status *MovieStatus
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
