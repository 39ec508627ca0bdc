package repository

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRoleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRoleRepository(db *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		db: db,
	}
}

func (p *PostgresRoleRepository) GetAll(ctx context.Context) ([]domain.Role, error) {
	query := `SELECT id, name FROM roles ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)

	for rows.Next() {
		var role domain.Role

		err = rows.Scan(&role.ID, &role.Name)
		if err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}
