package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// CreateWithToken inserts the user and an activation token for it in one
// transaction, so a failed token insert never leaves an unactivatable user.
func (p *PostgresUserRepository) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {

	var token *domain.Token

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (first_name, last_name, email, phone, password_hash, role_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, activated, version
		`

		err := tx.QueryRow(
			ctx,
			query,
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			user.Password.Hash,
			user.RoleID).Scan(&user.ID, &user.CreatedAt, &user.Activated, &user.Version)

		if err != nil {
			return err
		}

		token, err = tokenFn(user)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tokens (hash, user_id, expiry, scope)
			VALUES ($1, $2, $3, $4)
		`

		_, err = tx.Exec(ctx, query, token.Hash, token.UserId, token.Expiry, token.Scope)

		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserAlreadyExists
		}

		return nil, err
	}

	return token, nil
}

func (p *PostgresUserRepository) GetByToken(
	ctx context.Context,
	tokenHash []byte,
	tokenScope string) (*domain.User, error) {

	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.phone, u.password_hash, u.role_id,
			u.activated, u.created_at, u.version
		FROM users u
		JOIN tokens t ON u.id = t.user_id
		WHERE t.hash = $1 AND t.scope = $2 AND t.expiry > $3
	`

	return p.getUser(ctx, query, tokenHash, tokenScope, time.Now())
}

func (p *PostgresUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, password_hash, role_id,
			activated, created_at, version
		FROM users
		WHERE phone = $1
	`

	return p.getUser(ctx, query, phone)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, password_hash, role_id,
			activated, created_at, version
		FROM users
		WHERE id = $1
	`

	return p.getUser(ctx, query, id)
}

func (p *PostgresUserRepository) getUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User

	err := p.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Password.Hash,
		&user.RoleID,
		&user.Activated,
		&user.CreatedAt,
		&user.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) ActivateUser(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET activated = true, updated_at = NOW(), version = version + 1
			WHERE id = $1 AND version = $2
			RETURNING version
		`

		err := tx.QueryRow(ctx, query, user.ID, user.Version).Scan(&user.Version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		user.Activated = true

		query = `DELETE FROM tokens WHERE user_id = $1 AND scope = $2`

		_, err = tx.Exec(ctx, query, user.ID, domain.UserActivationScope)

		return err
	})
}

func (p *PostgresUserRepository) UpdatePassword(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET password_hash = $1, updated_at = NOW(), version = version + 1
			WHERE id = $2 AND version = $3
			RETURNING version
		`

		err := tx.QueryRow(ctx, query, user.Password.Hash, user.ID, user.Version).Scan(&user.Version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		query = `DELETE FROM tokens WHERE user_id = $1 AND scope = $2`

		_, err = tx.Exec(ctx, query, user.ID, domain.PasswordResetScope)

		return err
	})
}
