package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
)

type MovieResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Status      string `json:"status"`
	Language    string `json:"language"`
	Duration    int    `json:"duration"`
	ReleaseDate string `json:"releaseDate"`
	PosterUrl   string `json:"posterUrl"`
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Summary:     movie.Summary,
		Status:      movie.Status.String(),
		Language:    movie.Language,
		Duration:    movie.Duration,
		ReleaseDate: movie.ReleaseDate.Format(time.DateOnly),
		PosterUrl:   movie.PosterUrl,
	}
}

type MovieListResponse struct {
	Movies   []MovieResponse  `json:"movies"`
	Metadata MetadataResponse `json:"metadata"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r, "id", []string{"id", "title", "release_date"})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.MovieFilters{Pagination: pagination}

	if status := r.URL.Query().Get("status"); status != "" {
		movieStatus, err := domain.MovieStatusFromName(status)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("status must be one of COMING_SOON, IN_THEATERS, ENDED"))
			return
		}

		filters.Status = &movieStatus
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{
		Movies:   make([]MovieResponse, 0, len(movies)),
		Metadata: toMetadataResponse(metadata),
	}

	for _, movie := range movies {
		resp.Movies = append(resp.Movies, toMovieResponse(movie))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
