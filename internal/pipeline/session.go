// Package pipeline runs résumé records through schema introspection,
// property mapping and page creation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/destination"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// IntrospectSchema reads the database's property definitions once.
// Every failure is a connection error carrying the transport error.
func IntrospectSchema(ctx context.Context, dest destination.Destination, databaseID string) (entity.DestinationSchema, error) {
	kinds, err := dest.RetrieveSchema(ctx, databaseID)
	if err != nil {
		return entity.DestinationSchema{}, common.NewConnectionError(
			fmt.Sprintf("retrieve schema for database %s", databaseID), err)
	}
	return entity.NewDestinationSchema(kinds), nil
}

// Session binds a destination database to its cached schema.
// The schema is fetched by Connect and dropped only by Reconnect or Invalidate.
type Session struct {
	dest       destination.Destination
	databaseID string
	log        *slog.Logger

	mu     sync.RWMutex
	schema *entity.DestinationSchema
}

func NewSession(dest destination.Destination, databaseID string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{dest: dest, databaseID: databaseID, log: logger}
}

func (s *Session) DatabaseID() string { return s.databaseID }

func (s *Session) Destination() destination.Destination { return s.dest }

// Schema returns the cached schema, if Connect has succeeded.
func (s *Session) Schema() (entity.DestinationSchema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schema == nil {
		return entity.DestinationSchema{}, false
	}
	return *s.schema, true
}

// Connect returns the cached schema, fetching it on first use.
func (s *Session) Connect(ctx context.Context) (entity.DestinationSchema, error) {
	if schema, ok := s.Schema(); ok {
		return schema, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schema != nil {
		return *s.schema, nil
	}

	start := time.Now()
	schema, err := IntrospectSchema(ctx, s.dest, s.databaseID)
	if err != nil {
		s.log.Error("pipeline.session.connect_error",
			"database_id", s.databaseID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.DestinationSchema{}, err
	}
	s.schema = &schema
	s.log.Info("pipeline.session.connected",
		"database_id", s.databaseID,
		"properties", schema.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return schema, nil
}

// Invalidate drops the cached schema.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.schema = nil
	s.mu.Unlock()
}

// Reconnect drops the cached schema and fetches it again. On failure the
// session is left unconnected.
func (s *Session) Reconnect(ctx context.Context) (entity.DestinationSchema, error) {
	s.Invalidate()
	s.log.Info("pipeline.session.reconnect", "database_id", s.databaseID)
	return s.Connect(ctx)
}
