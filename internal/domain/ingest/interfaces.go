package ingest

import (
	"context"
	"time"

	"github.com/fkit-io/fkit/internal/domain/schema"
)

// Resolver is the slice of the schema service the coordinator needs.
type Resolver interface {
	ResolveProject(ctx context.Context, name string) (*schema.Project, error)
	ResolveColumn(ctx context.Context, projectID int64, name string) (*schema.Column, error)
	ResolveCollection(ctx context.Context, projectID int64, name string) (*schema.Collection, error)
}

// Repository provides persistence for datapoints.
type Repository interface {
	InsertDatapoint(ctx context.Context, columnID, collectionID int64, value []byte, createdAt time.Time) (int64, error)
}
