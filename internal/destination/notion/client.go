// Package notion implements destination.Destination on the Notion API.
package notion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/destination"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// Config for the Notion client.
type Config struct {
	Token   string
	Timeout time.Duration // http client timeout
}

// Client talks to one Notion integration.
type Client struct {
	api *notionapi.Client
	log *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	api := notionapi.NewClient(
		notionapi.Token(cfg.Token),
		notionapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return &Client{api: api, log: logger}
}

// NewFactory returns a destination.Factory producing Notion clients.
func NewFactory(timeout time.Duration, logger *slog.Logger) destination.Factory {
	return func(credential string) destination.Destination {
		return NewClient(Config{Token: credential, Timeout: timeout}, logger)
	}
}

func (c *Client) RetrieveSchema(ctx context.Context, databaseID string) (map[string]entity.PropertyKind, error) {
	rid := requestID(ctx)
	start := time.Now()
	c.log.Info("notion.database.retrieve", "req_id", rid, "database_id", databaseID)

	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		c.log.Error("notion.database.retrieve_error",
			"req_id", rid, "database_id", databaseID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("retrieve database %s: %w", databaseID, err)
	}

	kinds := SchemaFromConfigs(db.Properties)
	c.log.Info("notion.database.retrieve_ok",
		"req_id", rid, "database_id", databaseID, "properties", len(kinds),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return kinds, nil
}

func (c *Client) CreatePage(ctx context.Context, databaseID string, props entity.PropertySet) (entity.PageRef, error) {
	rid := requestID(ctx)
	start := time.Now()

	properties, err := ToProperties(props)
	if err != nil {
		return entity.PageRef{}, err
	}

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	})
	if err != nil {
		c.log.Error("notion.page.create_error",
			"req_id", rid, "run_id", common.RunIDFromContext(ctx),
			"database_id", databaseID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.PageRef{}, err
	}

	ref := entity.PageRef{ID: page.ID.String(), URL: page.URL}
	c.log.Info("notion.page.create_ok",
		"req_id", rid, "run_id", common.RunIDFromContext(ctx),
		"database_id", databaseID, "page_id", ref.ID,
		"properties", len(properties),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return ref, nil
}

func requestID(ctx context.Context) string {
	if rid := common.RequestIDFromContext(ctx); rid != "" {
		return rid
	}
	return uuid.New().String()
}
