package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) GetOccupiedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	return getOccupiedSeats(ctx, p.db, showtimeID)
}

// querier covers both the pool and an open transaction, so the purchase path
// can reuse the occupancy query inside its transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getOccupiedSeats(ctx context.Context, q querier, showtimeID int) ([]domain.Seat, error) {
	query := `
		SELECT seat_letter, seat_number
		FROM tickets
		WHERE showtime_id = $1 AND status = ANY($2)
		ORDER BY seat_letter, seat_number
	`

	activeStatuses := []int{int(domain.TicketReserved), int(domain.TicketPaid)}

	rows, err := q.Query(ctx, query, showtimeID, activeStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.Letter, &seat.Number)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// Purchase inserts one payment and one ticket per seat as a single
// transaction. Occupancy is re-checked inside the transaction, but the
// authoritative guard is the partial unique index on
// (showtime_id, seat_letter, seat_number) over active statuses: a concurrent
// writer that slips past the re-check fails the insert, and the violation is
// surfaced as domain.ErrSeatAlreadyTaken.
func (p *PostgresTicketRepository) Purchase(ctx context.Context, order domain.TicketOrder) (*domain.CompletedPurchase, error) {
	purchase := &domain.CompletedPurchase{}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		occupied, err := getOccupiedSeats(ctx, tx, order.ShowtimeID)
		if err != nil {
			return err
		}

		occupiedSet := make(map[domain.Seat]struct{}, len(occupied))
		for _, seat := range occupied {
			occupiedSet[seat] = struct{}{}
		}

		for _, seat := range order.Seats {
			if _, ok := occupiedSet[seat]; ok {
				return fmt.Errorf("seat %s: %w", seat.Label(), domain.ErrSeatAlreadyTaken)
			}
		}

		var anonymousUserID *int
		if order.Guest != nil {
			anonymousUserID, err = insertAnonymousUser(ctx, tx, order.Guest)
			if err != nil {
				return err
			}
		}

		payment := domain.Payment{
			Reference:       uuid.New(),
			UserID:          order.UserID,
			AnonymousUserID: anonymousUserID,
			Amount:          order.Total(),
			Status:          domain.PaymentSuccess,
		}

		query := `
			INSERT INTO payments (reference, user_id, anonymous_user_id, amount, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			payment.Reference,
			payment.UserID,
			payment.AnonymousUserID,
			payment.Amount,
			int(payment.Status)).Scan(&payment.ID, &payment.CreatedAt)

		if err != nil {
			return err
		}

		tickets, err := insertTickets(ctx, tx, order, payment.ID, anonymousUserID)
		if err != nil {
			return err
		}

		purchase.Payment = payment
		purchase.Tickets = tickets

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrSeatAlreadyTaken
		}

		return nil, err
	}

	return purchase, nil
}

func insertAnonymousUser(ctx context.Context, tx pgx.Tx, guest *domain.GuestContact) (*int, error) {
	query := `
		INSERT INTO anonymous_users (name, email, retrieval_code_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	err := tx.QueryRow(ctx, query, guest.Name, guest.Email, guest.RetrievalCodeHash).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func insertTickets(
	ctx context.Context,
	tx pgx.Tx,
	order domain.TicketOrder,
	paymentID int,
	anonymousUserID *int) ([]domain.Ticket, error) {

	query := `
		INSERT INTO tickets (
			seat_letter,
			seat_number,
			price,
			status,
			movie_id,
			showtime_id,
			hall_id,
			payment_id,
			user_id,
			anonymous_user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	batch := &pgx.Batch{}

	for _, seat := range order.Seats {
		batch.Queue(
			query,
			seat.Letter,
			seat.Number,
			order.UnitPrice,
			int(domain.TicketPaid),
			order.MovieID,
			order.ShowtimeID,
			order.HallID,
			paymentID,
			order.UserID,
			anonymousUserID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	tickets := make([]domain.Ticket, 0, len(order.Seats))

	for _, seat := range order.Seats {
		ticket := domain.Ticket{
			Seat:            seat,
			Price:           order.UnitPrice,
			Status:          domain.TicketPaid,
			MovieID:         order.MovieID,
			ShowtimeID:      order.ShowtimeID,
			HallID:          order.HallID,
			PaymentID:       paymentID,
			UserID:          order.UserID,
			AnonymousUserID: anonymousUserID,
		}

		err := results.QueryRow().Scan(&ticket.ID, &ticket.CreatedAt)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	return tickets, results.Close()
}

func (p *PostgresTicketRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.TicketSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			t.id,
			t.seat_letter,
			t.seat_number,
			t.price,
			t.status,
			m.title,
			c.name,
			h.name,
			s.date,
			s.starts_at,
			s.ends_at,
			t.created_at
		FROM tickets t
		JOIN showtimes s ON t.showtime_id = s.id
		JOIN movies m ON t.movie_id = m.id
		JOIN halls h ON t.hall_id = h.id
		JOIN cinemas c ON h.cinema_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries, totalRecords, err := scanTicketSummaries(rows, true)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresTicketRepository) GetSummariesByRetrievalCode(
	ctx context.Context,
	codeHash []byte) ([]domain.TicketSummary, error) {

	query := `
		SELECT
			t.id,
			t.seat_letter,
			t.seat_number,
			t.price,
			t.status,
			m.title,
			c.name,
			h.name,
			s.date,
			s.starts_at,
			s.ends_at,
			t.created_at
		FROM tickets t
		JOIN anonymous_users au ON t.anonymous_user_id = au.id
		JOIN showtimes s ON t.showtime_id = s.id
		JOIN movies m ON t.movie_id = m.id
		JOIN halls h ON t.hall_id = h.id
		JOIN cinemas c ON h.cinema_id = c.id
		WHERE au.retrieval_code_hash = $1
		ORDER BY t.id
	`

	rows, err := p.db.Query(ctx, query, codeHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries, _, err := scanTicketSummaries(rows, false)
	if err != nil {
		return nil, err
	}

	if len(summaries) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return summaries, nil
}

func scanTicketSummaries(rows pgx.Rows, withCount bool) ([]domain.TicketSummary, int, error) {
	summaries := make([]domain.TicketSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.TicketSummary
		var status int

		dest := []any{
			&summary.TicketID,
			&summary.Seat.Letter,
			&summary.Seat.Number,
			&summary.Price,
			&status,
			&summary.MovieTitle,
			&summary.CinemaName,
			&summary.HallName,
			&summary.Date,
			&summary.StartsAt,
			&summary.EndsAt,
			&summary.CreatedAt,
		}

		if withCount {
			dest = append([]any{&totalRecords}, dest...)
		}

		err := rows.Scan(dest...)
		if err != nil {
			return nil, 0, err
		}

		summary.Status, err = domain.TicketStatusFromInt(status)
		if err != nil {
			return nil, 0, err
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return summaries, totalRecords, nil
}
