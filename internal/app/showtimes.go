package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
)

type ShowtimeSummaryResponse struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	StartsAt   string `json:"startsAt"`
	EndsAt     string `json:"endsAt"`
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	HallID     int    `json:"hallId"`
	HallName   string `json:"hallName"`
	CinemaID   int    `json:"cinemaId"`
	CinemaName string `json:"cinemaName"`
}

type ShowtimeDetailResponse struct {
	ID         int          `json:"id"`
	Date       string       `json:"date"`
	StartsAt   string       `json:"startsAt"`
	EndsAt     string       `json:"endsAt"`
	MovieID    int          `json:"movieId"`
	MovieTitle string       `json:"movieTitle"`
	CinemaID   int          `json:"cinemaId"`
	CinemaName string       `json:"cinemaName"`
	Hall       HallResponse `json:"hall"`
}

func toShowtimeDetailResponse(detail *domain.ShowtimeDetail) ShowtimeDetailResponse {
	return ShowtimeDetailResponse{
		ID:         detail.ID,
		Date:       detail.Date.Format(time.DateOnly),
		StartsAt:   detail.StartsAt.Format(time.RFC3339),
		EndsAt:     detail.EndsAt.Format(time.RFC3339),
		MovieID:    detail.MovieID,
		MovieTitle: detail.MovieTitle,
		CinemaID:   detail.CinemaID,
		CinemaName: detail.CinemaName,
		Hall:       toHallResponse(detail.Hall),
	}
}

type ShowtimeListResponse struct {
	Showtimes []ShowtimeSummaryResponse `json:"showtimes"`
	Metadata  MetadataResponse          `json:"metadata"`
}

func (app *Application) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r, "starts_at", []string{"id", "date", "starts_at"})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.ShowtimeFilters{Pagination: pagination}
	qs := r.URL.Query()

	if movieId := qs.Get("movieId"); movieId != "" {
		filters.MovieID, err = strconv.Atoi(movieId)
		if err != nil || filters.MovieID < 1 {
			app.badRequestResponse(w, r, errors.New("movieId must be a positive integer"))
			return
		}
	}

	if cinemaId := qs.Get("cinemaId"); cinemaId != "" {
		filters.CinemaID, err = strconv.Atoi(cinemaId)
		if err != nil || filters.CinemaID < 1 {
			app.badRequestResponse(w, r, errors.New("cinemaId must be a positive integer"))
			return
		}
	}

	if date := qs.Get("date"); date != "" {
		parsed, err := time.Parse(time.DateOnly, date)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
			return
		}

		filters.Date = &parsed
	}

	showtimes, metadata, err := app.showtimeRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ShowtimeListResponse{
		Showtimes: make([]ShowtimeSummaryResponse, 0, len(showtimes)),
		Metadata:  toMetadataResponse(metadata),
	}

	for _, s := range showtimes {
		resp.Showtimes = append(resp.Showtimes, ShowtimeSummaryResponse{
			ID:         s.ID,
			Date:       s.Date.Format(time.DateOnly),
			StartsAt:   s.StartsAt.Format(time.RFC3339),
			EndsAt:     s.EndsAt.Format(time.RFC3339),
			MovieID:    s.MovieID,
			MovieTitle: s.MovieTitle,
			HallID:     s.HallID,
			HallName:   s.HallName,
			CinemaID:   s.CinemaID,
			CinemaName: s.CinemaName,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request) {
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

	err = app.writeJSON(w, http.StatusOK, toShowtimeDetailResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type CreateShowtimeRequest struct {
	MovieID  int       `json:"movieId" validate:"required,gte=1"`
	HallID   int       `json:"hallId" validate:"required,gte=1"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"required"`
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req CreateShowtimeRequest

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

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	showtime := &domain.Showtime{
		Date:     date,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		MovieID:  req.MovieID,
		HallID:   req.HallID,
	}

	err = showtime.Validate()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowtimeOverlap):
			app.conflictResponse(w, r, "The hall already has a showtime overlapping this time range")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("referenced movie or hall does not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	detail, err := app.showtimeRepo.GetById(r.Context(), showtime.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowtimeDetailResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
