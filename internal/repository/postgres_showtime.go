package repository

import (
	"context"
	"errors"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
	query := `
		SELECT
			s.id,
			s.date,
			s.starts_at,
			s.ends_at,
			s.movie_id,
			s.hall_id,
			h.cinema_id,
			h.name,
			h.row_count,
			h.col_count,
			h.is_special,
			h.base_price,
			m.title,
			c.id,
			c.name
		FROM showtimes s
		JOIN halls h ON s.hall_id = h.id
		JOIN cinemas c ON h.cinema_id = c.id
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var detail domain.ShowtimeDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Date,
		&detail.StartsAt,
		&detail.EndsAt,
		&detail.MovieID,
		&detail.HallID,
		&detail.Hall.CinemaID,
		&detail.Hall.Name,
		&detail.Hall.RowCount,
		&detail.Hall.ColCount,
		&detail.Hall.IsSpecial,
		&detail.Hall.BasePrice,
		&detail.MovieTitle,
		&detail.CinemaID,
		&detail.CinemaName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	detail.Hall.ID = detail.HallID

	return &detail, nil
}

func (p *PostgresShowtimeRepository) GetAll(
	ctx context.Context,
	filters domain.ShowtimeFilters) ([]domain.ShowtimeSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			s.id,
			s.date,
			s.starts_at,
			s.ends_at,
			s.movie_id,
			m.title,
			s.hall_id,
			h.name,
			c.id,
			c.name
		FROM showtimes s
		JOIN halls h ON s.hall_id = h.id
		JOIN cinemas c ON h.cinema_id = c.id
		JOIN movies m ON s.movie_id = m.id
		WHERE ($1 = 0 OR s.movie_id = $1)
			AND ($2 = 0 OR c.id = $2)
			AND ($3::date IS NULL OR s.date = $3)
		ORDER BY s.starts_at, s.id
		LIMIT $4 OFFSET $5
	`

	rows, err := p.db.Query(
		ctx,
		query,
		filters.MovieID,
		filters.CinemaID,
		filters.Date,
		filters.Limit(),
		filters.Offset(),
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.ShowtimeSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.ShowtimeSummary

		err := rows.Scan(
			&totalRecords,
			&summary.ID,
			&summary.Date,
			&summary.StartsAt,
			&summary.EndsAt,
			&summary.MovieID,
			&summary.MovieTitle,
			&summary.HallID,
			&summary.HallName,
			&summary.CinemaID,
			&summary.CinemaName,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return summaries, metadata, nil
}

// Create inserts a showtime. The halls exclusion constraint rejects a time
// window overlapping an existing showtime in the same hall; that violation is
// reported as domain.ErrShowtimeOverlap.
func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (date, starts_at, ends_at, movie_id, hall_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		showtime.Date,
		showtime.StartsAt,
		showtime.EndsAt,
		showtime.MovieID,
		showtime.HallID).Scan(&showtime.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return domain.ErrShowtimeOverlap
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}
