package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/internal/repository"
)

// ConnectHistory opens the upload history database. An empty URL disables history.
func ConnectHistory(ctx context.Context, url string, maxConns int32, logger *slog.Logger) (*repository.DB, error) {
	if url == "" {
		logger.Info("upload history disabled")
		return nil, nil
	}
	db, err := repository.Open(ctx, repository.Config{
		URL:             url,
		MaxConns:        maxConns,
		MaxConnLifetime: 30 * time.Minute,
		DialTimeout:     3 * time.Second,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to history database", "error", err)
		return nil, err
	}
	return db, nil
}
