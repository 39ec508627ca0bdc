package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-ticketing-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.rateLimit)
	r.Use(app.authenticate)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.GetHealth)

		r.Get("/movies", app.ListMovies)
		r.Get("/movies/{movieId}", app.GetMovie)

		r.Get("/cinemas", app.ListCinemas)
		r.Get("/cinemas/{cinemaId}", app.GetCinema)

		r.Get("/showtimes", app.ListShowtimes)
		r.Get("/showtimes/{showtimeId}", app.GetShowtime)
		r.Get("/showtimes/{showtimeId}/occupied-seats", app.GetOccupiedSeats)
		r.Get("/showtimes/{showtimeId}/price", app.GetTicketPrice)

		r.With(app.requireRole("ADMIN")).Post("/showtimes", app.CreateShowtime)
		r.With(app.requireRole("ADMIN")).Post("/admin/roles/reload", app.ReloadRoles)

		r.Post("/users", app.RegisterUser)
		r.Put("/users/activated", app.ActivateUser)
		r.Put("/users/password", app.CompletePasswordReset)

		r.Post("/tokens/authentication", app.Login)
		r.Post("/tokens/password-reset", app.InitiatePasswordReset)

		r.With(app.requireAuthentication).Get("/users/me", app.GetCurrentUser)
		r.With(app.requireAuthentication).Get("/users/me/tickets", app.ListUserTickets)

		r.With(app.requireRole("MEMBER")).Post("/tickets", app.PurchaseTickets)
		r.Post("/tickets/guest", app.PurchaseTicketsAsGuest)
		r.Get("/tickets/retrieval/{code}", app.RetrieveGuestTickets)
	})

	return r
}
