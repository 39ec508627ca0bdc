package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/domain"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// seedMember inserts an activated user with the MEMBER role and returns its id.
func seedMember(t testing.TB, app *TestApp, firstName, phone, email, password string) int {
	t.Helper()

	var user domain.User
	require.NoError(t, user.Password.Set(password))

	var id int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO users (first_name, last_name, email, phone, password_hash, role_id, activated)
		 VALUES ($1, 'Tester', $2, $3, $4, (SELECT id FROM roles WHERE name = 'MEMBER'), true)
		 RETURNING id`,
		firstName, email, phone, user.Password.Hash,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedAdmin(t testing.TB, app *TestApp, phone, email, password string) int {
	t.Helper()

	var user domain.User
	require.NoError(t, user.Password.Set(password))

	var id int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO users (first_name, last_name, email, phone, password_hash, role_id, activated)
		 VALUES ('Admin', 'Tester', $1, $2, $3, (SELECT id FROM roles WHERE name = 'ADMIN'), true)
		 RETURNING id`,
		email, phone, user.Password.Hash,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedMovie(t testing.TB, app *TestApp, title string) int {
	t.Helper()

	var id int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO movies (title, summary, status, language, duration, release_date)
		 VALUES ($1, 'An integration fixture.', 1, 'EN', 120, '2026-01-01')
		 RETURNING id`,
		title,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedCinemaWithHall(t testing.TB, app *TestApp, isSpecial bool, basePrice string) (int, int) {
	t.Helper()

	var cinemaID int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO cinemas (name, city, address)
		 VALUES ('Cinetick ' || gen_random_uuid(), 'Istanbul', 'Test Street 1')
		 RETURNING id`,
	).Scan(&cinemaID)
	require.NoError(t, err)

	var hallID int
	err = app.DB.QueryRow(
		context.Background(),
		`INSERT INTO halls (cinema_id, name, row_count, col_count, is_special, base_price)
		 VALUES ($1, 'Hall 1', 5, 10, $2, $3)
		 RETURNING id`,
		cinemaID, isSpecial, basePrice,
	).Scan(&hallID)
	require.NoError(t, err)

	return cinemaID, hallID
}

func seedShowtime(t testing.TB, app *TestApp, movieID, hallID int, startsAt time.Time) int {
	t.Helper()

	var id int
	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO showtimes (date, starts_at, ends_at, movie_id, hall_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		startsAt.Format(time.DateOnly), startsAt, startsAt.Add(2*time.Hour), movieID, hallID,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// login authenticates through the real endpoint and returns the bearer token.
func login(t testing.TB, app *TestApp, phone, password string) string {
	t.Helper()

	body := jsonBody(t, map[string]string{"phone": phone, "password": password})

	req, err := prepareRequest(http.MethodPost, "/v1/tokens/authentication", body, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "login failed: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

// uniquePhone fabricates an E.164 number that will not collide across tests.
func uniquePhone(n int) string {
	return fmt.Sprintf("+9055%08d", n)
}
