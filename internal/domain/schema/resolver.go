// Package schema maps untrusted project, column and collection names to
// stable row ids, creating entities on first reference. Lookup-then-insert
// is made effectively atomic by leaning on the store's uniqueness
// constraints: when an insert loses a race, the resolver re-runs the lookup
// and returns the winner's row.
package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkit-io/fkit/internal/repository"
)

// maxSlugRetries bounds re-encoding attempts when distinct names sanitize
// to the same encoded name.
const maxSlugRetries = 3

// Service resolves schema entities by name, creating them on miss.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a schema resolver.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// ResolveProject returns the project with the given name, creating it if
// absent. Concurrent calls for the same unseen name converge on one row.
func (s *Service) ResolveProject(ctx context.Context, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	proj, err := s.repo.GetProjectByName(ctx, name)
	if err == nil {
		return proj, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up project %q: %w", name, err)
	}

	encoded, err := EncodeName(name)
	if err != nil {
		return nil, err
	}
	proj = &Project{Name: name, EncodedName: encoded, CreatedAt: s.now()}

	for attempt := 0; ; attempt++ {
		err = s.repo.CreateProject(ctx, proj)
		switch {
		case err == nil:
			s.logger.Info("created project", "name", name, "id", proj.ID)
			return proj, nil
		case errors.Is(err, repository.ErrDuplicateName):
			// A concurrent caller won the insert; use its row.
			winner, lerr := s.repo.GetProjectByName(ctx, name)
			if errors.Is(lerr, repository.ErrNotFound) {
				s.logger.Error("project vanished after duplicate rejection", "name", name)
				return nil, ErrSchemaConflict
			}
			if lerr != nil {
				return nil, fmt.Errorf("looking up project %q after conflict: %w", name, lerr)
			}
			return winner, nil
		case errors.Is(err, repository.ErrDuplicateEncodedName) && attempt < maxSlugRetries:
			// Two distinct names sanitized to the same slug.
			if proj.EncodedName, err = randomSlug(encoded); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("creating project %q: %w", name, err)
		}
	}
}

// ResolveColumn returns the column with the given name under projectID,
// creating it as TEXT if absent.
func (s *Service) ResolveColumn(ctx context.Context, projectID int64, name string) (*Column, error) {
	return s.resolveColumn(ctx, projectID, name, DataTypeText)
}

// DefineColumn creates or returns a column with a declared data type. An
// existing column keeps its original type; redefinition never mutates rows.
func (s *Service) DefineColumn(ctx context.Context, projectID int64, name string, dataType DataType) (*Column, error) {
	if dataType != DataTypeText && dataType != DataTypeBlob {
		return nil, ErrInvalidType
	}
	return s.resolveColumn(ctx, projectID, name, dataType)
}

func (s *Service) resolveColumn(ctx context.Context, projectID int64, name string, dataType DataType) (*Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	col, err := s.repo.GetColumnByName(ctx, projectID, name)
	if err == nil {
		return col, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up column %q: %w", name, err)
	}

	encoded, err := EncodeName(name)
	if err != nil {
		return nil, err
	}
	col = &Column{
		ProjectID:   projectID,
		Name:        name,
		EncodedName: encoded,
		DataType:    dataType,
		CreatedAt:   s.now(),
	}

	for attempt := 0; ; attempt++ {
		err = s.repo.CreateColumn(ctx, col)
		switch {
		case err == nil:
			s.logger.Info("created column", "project_id", projectID, "name", name, "id", col.ID)
			return col, nil
		case errors.Is(err, repository.ErrDuplicateName):
			winner, lerr := s.repo.GetColumnByName(ctx, projectID, name)
			if errors.Is(lerr, repository.ErrNotFound) {
				s.logger.Error("column vanished after duplicate rejection", "project_id", projectID, "name", name)
				return nil, ErrSchemaConflict
			}
			if lerr != nil {
				return nil, fmt.Errorf("looking up column %q after conflict: %w", name, lerr)
			}
			return winner, nil
		case errors.Is(err, repository.ErrDuplicateEncodedName) && attempt < maxSlugRetries:
			if col.EncodedName, err = randomSlug(encoded); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("creating column %q: %w", name, err)
		}
	}
}

// ResolveCollection returns the collection with the given name under
// projectID, creating it with a fresh batch key if absent. An empty name
// resolves the project's default collection.
func (s *Service) ResolveCollection(ctx context.Context, projectID int64, name string) (*Collection, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultCollection
	}

	coll, err := s.repo.GetCollectionByName(ctx, projectID, name)
	if err == nil {
		return coll, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up collection %q: %w", name, err)
	}

	coll = &Collection{
		ProjectID: projectID,
		Name:      name,
		BatchKey:  uuid.NewString(),
		CreatedAt: s.now(),
	}

	err = s.repo.CreateCollection(ctx, coll)
	switch {
	case err == nil:
		s.logger.Info("created collection", "project_id", projectID, "name", name, "id", coll.ID)
		return coll, nil
	case errors.Is(err, repository.ErrDuplicateName):
		winner, lerr := s.repo.GetCollectionByName(ctx, projectID, name)
		if errors.Is(lerr, repository.ErrNotFound) {
			s.logger.Error("collection vanished after duplicate rejection", "project_id", projectID, "name", name)
			return nil, ErrSchemaConflict
		}
		if lerr != nil {
			return nil, fmt.Errorf("looking up collection %q after conflict: %w", name, lerr)
		}
		return winner, nil
	default:
		return nil, fmt.Errorf("creating collection %q: %w", name, err)
	}
}

// Projects lists all known projects.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx)
}

// Columns lists all columns of a project.
func (s *Service) Columns(ctx context.Context, projectID int64) ([]Column, error) {
	return s.repo.ListColumns(ctx, projectID)
}
