package app

import (
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/internal/domain"
)

type CinemaResponse struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	City    string         `json:"city"`
	Address string         `json:"address"`
	Halls   []HallResponse `json:"halls,omitempty"`
}

type HallResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	RowCount  int    `json:"rowCount"`
	ColCount  int    `json:"colCount"`
	Capacity  int    `json:"capacity"`
	IsSpecial bool   `json:"isSpecial"`
	BasePrice string `json:"basePrice"`
}

func toHallResponse(hall domain.Hall) HallResponse {
	return HallResponse{
		ID:        hall.ID,
		Name:      hall.Name,
		RowCount:  hall.RowCount,
		ColCount:  hall.ColCount,
		Capacity:  hall.Capacity(),
		IsSpecial: hall.IsSpecial,
		BasePrice: hall.BasePrice.String(),
	}
}

func toCinemaResponse(cinema *domain.Cinema) CinemaResponse {
	resp := CinemaResponse{
		ID:      cinema.ID,
		Name:    cinema.Name,
		City:    cinema.City,
		Address: cinema.Address,
	}

	for _, hall := range cinema.Halls {
		resp.Halls = append(resp.Halls, toHallResponse(hall))
	}

	return resp
}

type CinemaListResponse struct {
	Cinemas  []CinemaResponse `json:"cinemas"`
	Metadata MetadataResponse `json:"metadata"`
}

func (app *Application) ListCinemas(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r, "id", []string{"id", "name", "city"})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.CinemaFilters{
		Pagination: pagination,
		City:       r.URL.Query().Get("city"),
	}

	cinemas, metadata, err := app.cinemaRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := CinemaListResponse{
		Cinemas:  make([]CinemaResponse, 0, len(cinemas)),
		Metadata: toMetadataResponse(metadata),
	}

	for _, cinema := range cinemas {
		resp.Cinemas = append(resp.Cinemas, toCinemaResponse(cinema))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "cinemaId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	cinema, err := app.cinemaRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toCinemaResponse(cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
