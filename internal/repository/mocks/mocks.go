// Package mocks provides hand-written testify mocks for the domain
// repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fkit-io/fkit/internal/domain/schema"
)

// SchemaRepository is a mock for schema.Repository.
type SchemaRepository struct {
	mock.Mock
}

func (m *SchemaRepository) GetProjectByName(ctx context.Context, name string) (*schema.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*schema.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaRepository) CreateProject(ctx context.Context, proj *schema.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *SchemaRepository) ListProjects(ctx context.Context) ([]schema.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]schema.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaRepository) GetColumnByName(ctx context.Context, projectID int64, name string) (*schema.Column, error) {
	args := m.Called(ctx, projectID, name)
	if col, ok := args.Get(0).(*schema.Column); ok {
		return col, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaRepository) CreateColumn(ctx context.Context, col *schema.Column) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *SchemaRepository) ListColumns(ctx context.Context, projectID int64) ([]schema.Column, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]schema.Column); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaRepository) GetCollectionByName(ctx context.Context, projectID int64, name string) (*schema.Collection, error) {
	args := m.Called(ctx, projectID, name)
	if coll, ok := args.Get(0).(*schema.Collection); ok {
		return coll, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaRepository) CreateCollection(ctx context.Context, coll *schema.Collection) error {
	args := m.Called(ctx, coll)
	return args.Error(0)
}

// DatapointRepository is a mock for ingest.Repository.
type DatapointRepository struct {
	mock.Mock
}

func (m *DatapointRepository) InsertDatapoint(ctx context.Context, columnID, collectionID int64, value []byte, createdAt time.Time) (int64, error) {
	args := m.Called(ctx, columnID, collectionID, value, createdAt)
	return args.Get(0).(int64), args.Error(1)
}

// SchemaResolver is a mock for ingest.Resolver.
type SchemaResolver struct {
	mock.Mock
}

func (m *SchemaResolver) ResolveProject(ctx context.Context, name string) (*schema.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*schema.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaResolver) ResolveColumn(ctx context.Context, projectID int64, name string) (*schema.Column, error) {
	args := m.Called(ctx, projectID, name)
	if col, ok := args.Get(0).(*schema.Column); ok {
		return col, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SchemaResolver) ResolveCollection(ctx context.Context, projectID int64, name string) (*schema.Collection, error) {
	args := m.Called(ctx, projectID, name)
	if coll, ok := args.Get(0).(*schema.Collection); ok {
		return coll, args.Error(1)
	}
	return nil, args.Error(1)
}
