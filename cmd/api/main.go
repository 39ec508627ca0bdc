package main

import (
	"log/slog"
	"os"

	"github.com/cinetick/cinetick/internal/app"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := app.Run(logger)
	if err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
