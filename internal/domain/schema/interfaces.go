package schema

import "context"

// Repository provides persistence for schema entities. Create methods must
// surface repository.ErrDuplicate on uniqueness rejections so the resolver
// can re-run its lookup and converge on the winner.
type Repository interface {
	GetProjectByName(ctx context.Context, name string) (*Project, error)
	CreateProject(ctx context.Context, proj *Project) error
	ListProjects(ctx context.Context) ([]Project, error)

	GetColumnByName(ctx context.Context, projectID int64, name string) (*Column, error)
	CreateColumn(ctx context.Context, col *Column) error
	ListColumns(ctx context.Context, projectID int64) ([]Column, error)

	GetCollectionByName(ctx context.Context, projectID int64, name string) (*Collection, error)
	CreateCollection(ctx context.Context, coll *Collection) error
}
