package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/mocks"
)

type ShowtimesTestSuite struct {
	suite.Suite
	app          *Application
	showtimeRepo *mocks.MockShowtimeRepo
}

func (s *ShowtimesTestSuite) SetupTest() {
	s.showtimeRepo = new(mocks.MockShowtimeRepo)

	s.app = newTestApplication(func(a *Application) {
		a.showtimeRepo = s.showtimeRepo
	})
}

func TestShowtimesSuite(t *testing.T) {
	suite.Run(t, new(ShowtimesTestSuite))
}

func (s *ShowtimesTestSuite) TestListShowtimes() {
	s.Run("should fail when date is malformed", func() {
		s.SetupTest()

		w := executeRequest(s.T(), s.app, http.MethodGet, "/v1/showtimes?date=02-09-2026", nil, "")

		s.Equal(http.StatusBadRequest, w.Code)
		checkErrorResponse(s.T(), w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	})

	s.Run("should pass filters down to the repository", func() {
		s.SetupTest()

		s.showtimeRepo.GetAllFunc = func(ctx context.Context, filters domain.ShowtimeFilters) ([]domain.ShowtimeSummary, *domain.Metadata, error) {
			s.Equal(3, filters.MovieID)
			s.Equal(4, filters.CinemaID)
			s.Require().NotNil(filters.Date)
			s.Equal("2026-09-02", filters.Date.Format(time.DateOnly))

			return []domain.ShowtimeSummary{
				{
					ID:         1,
					Date:       time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
					StartsAt:   time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
					EndsAt:     time.Date(2026, 9, 2, 20, 30, 0, 0, time.UTC),
					MovieID:    3,
					MovieTitle: "Interstellar",
					HallID:     2,
					HallName:   "Hall 1",
					CinemaID:   4,
					CinemaName: "Cinetick Kadikoy",
				},
			}, domain.NewMetadata(1, 1, 20), nil
		}

		w := executeRequest(s.T(), s.app, http.MethodGet, "/v1/showtimes?movieId=3&cinemaId=4&date=2026-09-02", nil, "")

		s.Equal(http.StatusOK, w.Code)

		var resp ShowtimeListResponse
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Len(resp.Showtimes, 1)
		s.Equal("Interstellar", resp.Showtimes[0].MovieTitle)
		s.Equal("2026-09-02", resp.Showtimes[0].Date)
	})
}

func (s *ShowtimesTestSuite) TestCreateShowtime() {
	validBody := CreateShowtimeRequest{
		MovieID:  3,
		HallID:   2,
		Date:     "2026-09-02",
		StartsAt: time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 2, 20, 30, 0, 0, time.UTC),
	}

	adminToken := func() string { return bearerToken(s.T(), s.app, 1, domain.RoleAdmin) }

	tests := []struct {
		name           string
		body           CreateShowtimeRequest
		token          func() string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "should fail without authentication",
			body:       validBody,
			token:      func() string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "should fail for a non-admin role",
			body:       validBody,
			token:      func() string { return bearerToken(s.T(), s.app, 7, domain.RoleMember) },
			wantStatus: http.StatusForbidden,
		},
		{
			name: "should fail when the time range is inverted",
			body: func() CreateShowtimeRequest {
				b := validBody
				b.StartsAt, b.EndsAt = b.EndsAt, b.StartsAt
				return b
			}(),
			token:          adminToken,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "showtime start must be before its end",
		},
		{
			name:  "should fail with conflict when the hall is already booked",
			body:  validBody,
			token: adminToken,
			setupMocks: func() {
				s.showtimeRepo.CreateFunc = func(ctx context.Context, showtime *domain.Showtime) error {
					return domain.ErrShowtimeOverlap
				}
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "The hall already has a showtime overlapping this time range",
		},
		{
			name:  "should fail when the movie or hall reference is dangling",
			body:  validBody,
			token: adminToken,
			setupMocks: func() {
				s.showtimeRepo.CreateFunc = func(ctx context.Context, showtime *domain.Showtime) error {
					return domain.ErrRecordNotFound
				}
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "referenced movie or hall does not exist",
		},
		{
			name:  "should create the showtime",
			body:  validBody,
			token: adminToken,
			setupMocks: func() {
				s.showtimeRepo.CreateFunc = func(ctx context.Context, showtime *domain.Showtime) error {
					s.Equal(3, showtime.MovieID)
					s.Equal(2, showtime.HallID)
					showtime.ID = 1
					return nil
				}
				s.showtimeRepo.GetByIdFunc = func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
					s.Equal(1, id)
					return showtimeDetailFixture(), nil
				}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w := executeRequest(s.T(), s.app, http.MethodPost, "/v1/showtimes", tt.body, tt.token())

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusCreated {
				var resp ShowtimeDetailResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(1, resp.ID)
				s.Equal("Interstellar", resp.MovieTitle)
			}
		})
	}
}
