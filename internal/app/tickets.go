package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinetick/cinetick/internal/domain"
)

const retrievalCodeLength = 16

type TicketPriceResponse struct {
	ShowtimeID int    `json:"showtimeId"`
	UnitPrice  string `json:"unitPrice"`
}

func (app *Application) GetTicketPrice(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	detail, err := app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := TicketPriceResponse{
		ShowtimeID: id,
		UnitPrice:  domain.TicketPrice(detail.Hall, detail.Date).String(),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type SeatRequest struct {
	Letter string `json:"letter" validate:"required,seat_letter"`
	Number int    `json:"number" validate:"required,gte=1"`
}

type PurchaseTicketsRequest struct {
	ShowtimeID int           `json:"showtimeId" validate:"required,gte=1"`
	Seats      []SeatRequest `json:"seats" validate:"required,min=1,max=10,dive"`
}

type PurchaseTicketsAsGuestRequest struct {
	ShowtimeID int           `json:"showtimeId" validate:"required,gte=1"`
	Seats      []SeatRequest `json:"seats" validate:"required,min=1,max=10,dive"`
	Name       string        `json:"name" validate:"required,min=2,max=100"`
	Email      string        `json:"email" validate:"required,email"`
}

type TicketResponse struct {
	ID     int          `json:"id"`
	Seat   SeatResponse `json:"seat"`
	Price  string       `json:"price"`
	Status string       `json:"status"`
}

type PurchaseResponse struct {
	PaymentReference string           `json:"paymentReference"`
	TotalPrice       string           `json:"totalPrice"`
	Tickets          []TicketResponse `json:"tickets"`
}

func toPurchaseResponse(purchase *domain.CompletedPurchase) PurchaseResponse {
	resp := PurchaseResponse{
		PaymentReference: purchase.Payment.Reference.String(),
		TotalPrice:       purchase.Payment.Amount.String(),
		Tickets:          make([]TicketResponse, 0, len(purchase.Tickets)),
	}

	for _, ticket := range purchase.Tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{
			ID:     ticket.ID,
			Seat:   toSeatResponse(ticket.Seat),
			Price:  ticket.Price.String(),
			Status: ticket.Status.String(),
		})
	}

	return resp
}

func (app *Application) PurchaseTickets(w http.ResponseWriter, r *http.Request) {
	var req PurchaseTicketsRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	detail, seats, ok := app.prepareOrder(w, r, req.ShowtimeID, req.Seats)
	if !ok {
		return
	}

	order := domain.TicketOrder{
		ShowtimeID: detail.ID,
		MovieID:    detail.MovieID,
		HallID:     detail.Hall.ID,
		UserID:     &userID,
		Seats:      seats,
		UnitPrice:  domain.TicketPrice(detail.Hall, detail.Date),
	}

	purchase, err := app.ticketRepo.Purchase(r.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			app.conflictResponse(w, r, "One or more of the selected seats are already taken")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.sendPurchaseConfirmation(domain.PurchaseConfirmation{
		Recipient:     user.Email,
		RecipientName: user.FirstName,
		MovieTitle:    detail.MovieTitle,
		CinemaName:    detail.CinemaName,
		HallName:      detail.Hall.Name,
		Date:          detail.Date,
		StartsAt:      detail.StartsAt,
		EndsAt:        detail.EndsAt,
		Seats:         seats,
		TotalPrice:    purchase.Payment.Amount,
	})

	err = app.writeJSON(w, http.StatusCreated, toPurchaseResponse(purchase), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// PurchaseTicketsAsGuest is the account-less purchase path. The retrieval
// code is delivered by email only; the response carries the tickets and the
// payment reference, never the code.
func (app *Application) PurchaseTicketsAsGuest(w http.ResponseWriter, r *http.Request) {
	var req PurchaseTicketsAsGuestRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	detail, seats, ok := app.prepareOrder(w, r, req.ShowtimeID, req.Seats)
	if !ok {
		return
	}

	code, codeHash, err := domain.GenerateRetrievalCode()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	order := domain.TicketOrder{
		ShowtimeID: detail.ID,
		MovieID:    detail.MovieID,
		HallID:     detail.Hall.ID,
		Guest: &domain.GuestContact{
			Name:              req.Name,
			Email:             req.Email,
			RetrievalCodeHash: codeHash,
		},
		Seats:     seats,
		UnitPrice: domain.TicketPrice(detail.Hall, detail.Date),
	}

	purchase, err := app.ticketRepo.Purchase(r.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			app.conflictResponse(w, r, "One or more of the selected seats are already taken")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.sendPurchaseConfirmation(domain.PurchaseConfirmation{
		Recipient:     req.Email,
		RecipientName: req.Name,
		MovieTitle:    detail.MovieTitle,
		CinemaName:    detail.CinemaName,
		HallName:      detail.Hall.Name,
		Date:          detail.Date,
		StartsAt:      detail.StartsAt,
		EndsAt:        detail.EndsAt,
		Seats:         seats,
		TotalPrice:    purchase.Payment.Amount,
		RetrievalCode: code,
	})

	err = app.writeJSON(w, http.StatusCreated, toPurchaseResponse(purchase), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// prepareOrder resolves the showtime and checks the requested seats against
// its hall grid. It writes the error response itself when validation fails.
func (app *Application) prepareOrder(w http.ResponseWriter, r *http.Request, showtimeID int, seatReqs []SeatRequest) (*domain.ShowtimeDetail, []domain.Seat, bool) {
	detail, err := app.showtimeRepo.GetById(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, nil, false
	}

	seats := make([]domain.Seat, 0, len(seatReqs))
	for _, s := range seatReqs {
		seats = append(seats, domain.Seat{Letter: s.Letter, Number: s.Number})
	}

	if seat, dup := domain.DedupeSeats(seats); dup {
		app.badRequestResponse(w, r, fmt.Errorf("seat %s is requested more than once", seat.Label()))
		return nil, nil, false
	}

	for _, seat := range seats {
		if !detail.Hall.HasSeat(seat) {
			app.badRequestResponse(w, r, fmt.Errorf("seat %s is outside the hall layout", seat.Label()))
			return nil, nil, false
		}
	}

	return detail, seats, true
}

func (app *Application) sendPurchaseConfirmation(confirmation domain.PurchaseConfirmation) {
	app.background(func() {
		seatLabels := make([]string, 0, len(confirmation.Seats))
		for _, seat := range confirmation.Seats {
			seatLabels = append(seatLabels, seat.Label())
		}

		data := map[string]any{
			"recipientName": confirmation.RecipientName,
			"movieTitle":    confirmation.MovieTitle,
			"cinemaName":    confirmation.CinemaName,
			"hallName":      confirmation.HallName,
			"date":          confirmation.Date.Format(time.DateOnly),
			"startsAt":      confirmation.StartsAt.Format("15:04"),
			"endsAt":        confirmation.EndsAt.Format("15:04"),
			"seats":         seatLabels,
			"totalPrice":    confirmation.TotalPrice.String(),
			"retrievalCode": confirmation.RetrievalCode,
		}

		err := app.mailer.Send(confirmation.Recipient, "ticket_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send ticket confirmation email", "error", err, "recipient", confirmation.Recipient)
		}
	})
}

type TicketSummaryResponse struct {
	ID         int          `json:"id"`
	Seat       SeatResponse `json:"seat"`
	Price      string       `json:"price"`
	Status     string       `json:"status"`
	MovieTitle string       `json:"movieTitle"`
	CinemaName string       `json:"cinemaName"`
	HallName   string       `json:"hallName"`
	Date       string       `json:"date"`
	StartsAt   string       `json:"startsAt"`
	EndsAt     string       `json:"endsAt"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func toTicketSummaryResponse(summary domain.TicketSummary) TicketSummaryResponse {
	return TicketSummaryResponse{
		ID:         summary.TicketID,
		Seat:       toSeatResponse(summary.Seat),
		Price:      summary.Price.String(),
		Status:     summary.Status.String(),
		MovieTitle: summary.MovieTitle,
		CinemaName: summary.CinemaName,
		HallName:   summary.HallName,
		Date:       summary.Date.Format(time.DateOnly),
		StartsAt:   summary.StartsAt.Format(time.RFC3339),
		EndsAt:     summary.EndsAt.Format(time.RFC3339),
		CreatedAt:  summary.CreatedAt,
	}
}

type UserTicketsResponse struct {
	Tickets  []TicketSummaryResponse `json:"tickets"`
	Metadata MetadataResponse        `json:"metadata"`
}

func (app *Application) ListUserTickets(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r, "-created_at", []string{"id", "created_at", "date"})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	summaries, metadata, err := app.ticketRepo.GetSummariesByUserId(r.Context(), app.contextGetUserId(r), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := UserTicketsResponse{
		Tickets:  make([]TicketSummaryResponse, 0, len(summaries)),
		Metadata: toMetadataResponse(metadata),
	}

	for _, summary := range summaries {
		resp.Tickets = append(resp.Tickets, toTicketSummaryResponse(summary))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type GuestTicketsResponse struct {
	Tickets []TicketSummaryResponse `json:"tickets"`
}

func (app *Application) RetrieveGuestTickets(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if len(code) != retrievalCodeLength {
		app.notFoundResponse(w, r)
		return
	}

	summaries, err := app.ticketRepo.GetSummariesByRetrievalCode(r.Context(), domain.HashRetrievalCode(code))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := GuestTicketsResponse{
		Tickets: make([]TicketSummaryResponse, 0, len(summaries)),
	}

	for _, summary := range summaries {
		resp.Tickets = append(resp.Tickets, toTicketSummaryResponse(summary))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
