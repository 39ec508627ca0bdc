package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinetick/cinetick/internal/auth"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/mailer"
	"github.com/cinetick/cinetick/internal/mocks"
	"github.com/cinetick/cinetick/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Env: "test",
			JWT: JWTConfig{Secret: "test-secret", TTL: time.Hour},
		},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: validator.NewValidator(),
		mailer:    &mailer.MockMailer{},
		roles:     &mocks.MockRoleLookup{Roles: mocks.DefaultRoles()},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// executeRequest drives a request through the full router, so middleware and
// URL parameter handling behave exactly as in production.
func executeRequest(t *testing.T, app *Application, method, url string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func bearerToken(t *testing.T, app *Application, userID int, role string) string {
	t.Helper()

	token, _, err := auth.NewAccessToken([]byte(app.config.JWT.Secret), userID, role, app.config.JWT.TTL)
	if err != nil {
		t.Fatal(err)
	}

	return token
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	var errorResp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if wantErrMessage == "" {
		return
	}

	if errorResp.Message == wantErrMessage {
		return
	}

	for _, detail := range errorResp.Details {
		if detail.Issue == wantErrMessage {
			return
		}
	}

	t.Errorf("Expected error message %q not found in response (got message %q, details %+v)",
		wantErrMessage, errorResp.Message, errorResp.Details)
}

func testMailer(app *Application) *mailer.MockMailer {
	return app.mailer.(*mailer.MockMailer)
}

func ptr[T any](v T) *T {
	return &v
}

// showtimeDetailFixture is a midweek showtime in a standard 5x10 hall with a
// base price of 200, so the unit price stays at 200.
func showtimeDetailFixture() *domain.ShowtimeDetail {
	return &domain.ShowtimeDetail{
		Showtime: domain.Showtime{
			ID:       1,
			Date:     time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			StartsAt: time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, 2, 20, 30, 0, 0, time.UTC),
			MovieID:  3,
			HallID:   2,
		},
		Hall: domain.Hall{
			ID:        2,
			CinemaID:  4,
			Name:      "Hall 1",
			RowCount:  5,
			ColCount:  10,
			IsSpecial: false,
			BasePrice: decimal.NewFromInt(200),
		},
		MovieTitle: "Interstellar",
		CinemaID:   4,
		CinemaName: "Cinetick Kadikoy",
	}
}
