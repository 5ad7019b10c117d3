// Package destination defines the remote database the mapped records are written to.
package destination

import (
	"context"

	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// Destination is a page database that can describe its schema and accept new pages.
type Destination interface {
	// RetrieveSchema returns the declared property kinds of a database.
	RetrieveSchema(ctx context.Context, databaseID string) (map[string]entity.PropertyKind, error)
	// CreatePage creates one page under the database with the given properties.
	CreatePage(ctx context.Context, databaseID string, props entity.PropertySet) (entity.PageRef, error)
}

// Factory builds a Destination bound to a bearer credential.
type Factory func(credential string) Destination
