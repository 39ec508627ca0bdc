package repository

import (
	"context"
	"errors"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) GetAll(
	ctx context.Context,
	filters domain.CinemaFilters) ([]*domain.Cinema, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), id, name, city, address
		FROM cinemas
		WHERE ($1 = '' OR lower(city) = lower($1))
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, filters.City, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	cinemas := []*domain.Cinema{}

	for rows.Next() {
		var cinema domain.Cinema

		err := rows.Scan(
			&totalRecords,
			&cinema.ID,
			&cinema.Name,
			&cinema.City,
			&cinema.Address,
		)
		if err != nil {
			return nil, nil, err
		}

		cinemas = append(cinemas, &cinema)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return cinemas, metadata, nil
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `
		SELECT id, name, city, address
		FROM cinemas
		WHERE id = $1
	`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.City,
		&cinema.Address,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	halls, err := p.retrieveHalls(ctx, id)
	if err != nil {
		return nil, err
	}

	cinema.Halls = halls

	return &cinema, nil
}

func (p *PostgresCinemaRepository) retrieveHalls(ctx context.Context, cinemaID int) ([]domain.Hall, error) {
	query := `
		SELECT id, cinema_id, name, row_count, col_count, is_special, base_price
		FROM halls
		WHERE cinema_id = $1
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.Hall, 0)

	for rows.Next() {
		var hall domain.Hall

		err := rows.Scan(
			&hall.ID,
			&hall.CinemaID,
			&hall.Name,
			&hall.RowCount,
			&hall.ColCount,
			&hall.IsSpecial,
			&hall.BasePrice,
		)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}
