package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	var status any
	if filters.Status != nil {
		status = int(*filters.Status)
	}

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, title, summary, status, language, duration, release_date, poster_url, created_at
		FROM movies
		WHERE ((to_tsvector('english', title) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', summary) @@ plainto_tsquery('english', $1))
			OR $1 = '')
			AND ($2::int IS NULL OR status = $2)
		ORDER BY %s %s, id
		LIMIT $3 OFFSET $4`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, status, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows, &totalRecords)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, summary, status, language, duration, release_date, poster_url, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie
	var status int

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Summary,
		&status,
		&movie.Language,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.PosterUrl,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Status, err = domain.MovieStatusFromInt(status)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func scanMovie(rows pgx.Rows, totalRecords *int) (*domain.Movie, error) {
	var movie domain.Movie
	var status int

	err := rows.Scan(
		totalRecords,
		&movie.ID,
		&movie.Title,
		&movie.Summary,
		&status,
		&movie.Language,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.PosterUrl,
		&movie.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Status, err = domain.MovieStatusFromInt(status)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}
