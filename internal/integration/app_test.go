package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinetick/cinetick/internal/app"
	"github.com/cinetick/cinetick/internal/mailer"
	"github.com/cinetick/cinetick/internal/repository"
	appvalidator "github.com/cinetick/cinetick/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := &mailer.MockMailer{}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	roleCache, err := repository.NewRoleCache(context.Background(), repository.NewPostgresRoleRepository(db))
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresTokenRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresCinemaRepository(db),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresTicketRepository(db),
		roleCache,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
