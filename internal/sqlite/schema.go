package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fkit-io/fkit/internal/domain/schema"
)

// SchemaRepository implements schema.Repository for SQLite.
type SchemaRepository struct {
	db *DB
}

// NewSchemaRepository creates a new SchemaRepository.
func NewSchemaRepository(db *DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// GetProjectByName retrieves a project by exact name match.
func (r *SchemaRepository) GetProjectByName(ctx context.Context, name string) (*schema.Project, error) {
	query := `
		SELECT id, name, encoded_name, created_at
		FROM projects
		WHERE name = ?
	`

	var proj schema.Project
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&proj.ID,
		&proj.Name,
		&proj.EncodedName,
		&createdAt,
	)
	if err != nil {
		return nil, storageErr(err, "", "")
	}

	proj.CreatedAt = time.Unix(createdAt, 0)
	return &proj, nil
}

// CreateProject inserts a new project row and fills in its assigned id.
func (r *SchemaRepository) CreateProject(ctx context.Context, proj *schema.Project) error {
	query := `
		INSERT INTO projects (name, encoded_name, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		proj.Name,
		proj.EncodedName,
		proj.CreatedAt.Unix(),
	).Scan(&proj.ID)
	if err != nil {
		return storageErr(err, "projects.name", "projects.encoded_name")
	}
	return nil
}

// ListProjects returns all projects ordered by creation.
func (r *SchemaRepository) ListProjects(ctx context.Context) ([]schema.Project, error) {
	query := `
		SELECT id, name, encoded_name, created_at
		FROM projects
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", storageErr(err, "", ""))
	}
	defer rows.Close()

	var projects []schema.Project
	for rows.Next() {
		var proj schema.Project
		var createdAt int64
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.EncodedName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		proj.CreatedAt = time.Unix(createdAt, 0)
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", storageErr(err, "", ""))
	}

	return projects, nil
}

// GetColumnByName retrieves a column by (project id, name).
func (r *SchemaRepository) GetColumnByName(ctx context.Context, projectID int64, name string) (*schema.Column, error) {
	query := `
		SELECT id, project_id, name, encoded_name, data_type, created_at
		FROM columns
		WHERE project_id = ? AND name = ?
	`

	var col schema.Column
	var dataType string
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, projectID, name).Scan(
		&col.ID,
		&col.ProjectID,
		&col.Name,
		&col.EncodedName,
		&dataType,
		&createdAt,
	)
	if err != nil {
		return nil, storageErr(err, "", "")
	}

	col.DataType, err = schema.ParseDataType(dataType)
	if err != nil {
		return nil, fmt.Errorf("column %d has unknown data type %q: %w", col.ID, dataType, err)
	}
	col.CreatedAt = time.Unix(createdAt, 0)
	return &col, nil
}

// CreateColumn inserts a new column row and fills in its assigned id.
func (r *SchemaRepository) CreateColumn(ctx context.Context, col *schema.Column) error {
	query := `
		INSERT INTO columns (project_id, name, encoded_name, data_type, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		col.ProjectID,
		col.Name,
		col.EncodedName,
		string(col.DataType),
		col.CreatedAt.Unix(),
	).Scan(&col.ID)
	if err != nil {
		return storageErr(err, "columns.project_id, columns.name", "columns.project_id, columns.encoded_name")
	}
	return nil
}

// ListColumns returns all columns of a project ordered by creation.
func (r *SchemaRepository) ListColumns(ctx context.Context, projectID int64) ([]schema.Column, error) {
	query := `
		SELECT id, project_id, name, encoded_name, data_type, created_at
		FROM columns
		WHERE project_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", storageErr(err, "", ""))
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var dataType string
		var createdAt int64
		if err := rows.Scan(&col.ID, &col.ProjectID, &col.Name, &col.EncodedName, &dataType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.DataType, err = schema.ParseDataType(dataType)
		if err != nil {
			return nil, fmt.Errorf("column %d has unknown data type %q: %w", col.ID, dataType, err)
		}
		col.CreatedAt = time.Unix(createdAt, 0)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", storageErr(err, "", ""))
	}

	return columns, nil
}

// GetCollectionByName retrieves a collection by (project id, name).
func (r *SchemaRepository) GetCollectionByName(ctx context.Context, projectID int64, name string) (*schema.Collection, error) {
	query := `
		SELECT id, project_id, name, batch_key, created_at
		FROM collections
		WHERE project_id = ? AND name = ?
	`

	var coll schema.Collection
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, projectID, name).Scan(
		&coll.ID,
		&coll.ProjectID,
		&coll.Name,
		&coll.BatchKey,
		&createdAt,
	)
	if err != nil {
		return nil, storageErr(err, "", "")
	}

	coll.CreatedAt = time.Unix(createdAt, 0)
	return &coll, nil
}

// CreateCollection inserts a new collection row and fills in its assigned id.
func (r *SchemaRepository) CreateCollection(ctx context.Context, coll *schema.Collection) error {
	query := `
		INSERT INTO collections (project_id, name, batch_key, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		coll.ProjectID,
		coll.Name,
		coll.BatchKey,
		coll.CreatedAt.Unix(),
	).Scan(&coll.ID)
	if err != nil {
		return storageErr(err, "collections.project_id, collections.name", "")
	}
	return nil
}
