package app

import (
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/internal/domain"
)

type SeatResponse struct {
	Letter string `json:"letter"`
	Number int    `json:"number"`
	Label  string `json:"label"`
}

func toSeatResponse(seat domain.Seat) SeatResponse {
	return SeatResponse{
		Letter: seat.Letter,
		Number: seat.Number,
		Label:  seat.Label(),
	}
}

type OccupiedSeatsResponse struct {
	ShowtimeID    int            `json:"showtimeId"`
	OccupiedSeats []SeatResponse `json:"occupiedSeats"`
}

// GetOccupiedSeats answers for existing showtimes only; an unknown showtime
// is a 404, not an empty list.
func (app *Application) GetOccupiedSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	_, err = app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	seats, err := app.ticketRepo.GetOccupiedSeats(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := OccupiedSeatsResponse{
		ShowtimeID:    id,
		OccupiedSeats: make([]SeatResponse, 0, len(seats)),
	}

	for _, seat := range seats {
		resp.OccupiedSeats = append(resp.OccupiedSeats, toSeatResponse(seat))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
