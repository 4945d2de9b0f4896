// Package ingest coordinates the write path: resolve names to ids through
// the schema service, then append datapoints. Failures from resolution
// propagate unchanged; nothing here retries, since a blind retry of an
// insert risks duplicate datapoints without an idempotency key.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"
)

// Service handles write operations.
type Service struct {
	resolver Resolver
	repo     Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a write coordinator.
func NewService(resolver Resolver, repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{resolver: resolver, repo: repo, logger: logger, now: time.Now}
}

// Write stores a single observation. The project, column and collection are
// created on first reference.
func (s *Service) Write(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	proj, err := s.resolver.ResolveProject(ctx, req.Project)
	if err != nil {
		return nil, err
	}
	col, err := s.resolver.ResolveColumn(ctx, proj.ID, req.Column)
	if err != nil {
		return nil, err
	}
	coll, err := s.resolver.ResolveCollection(ctx, proj.ID, req.Collection)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.InsertDatapoint(ctx, col.ID, coll.ID, req.Value, s.now())
	if err != nil {
		return nil, fmt.Errorf("inserting datapoint: %w", err)
	}

	s.logger.Debug("stored datapoint", "project", req.Project, "column", req.Column, "id", id)
	return &WriteResult{
		DatapointID:  id,
		ProjectID:    proj.ID,
		ColumnID:     col.ID,
		CollectionID: coll.ID,
	}, nil
}

// WriteBatch stores several observations written together, sharing one
// collection. All columns are resolved before any datapoint is inserted, so
// a bad column name aborts the batch without storing anything. A storage
// failure mid-batch stops at the failing column; datapoints already
// inserted remain, as every insert is independently valid and append-only.
func (s *Service) WriteBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Values) == 0 {
		return nil, ErrEmptyBatch
	}

	proj, err := s.resolver.ResolveProject(ctx, req.Project)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]int64, len(names))
	for i, name := range names {
		col, err := s.resolver.ResolveColumn(ctx, proj.ID, name)
		if err != nil {
			return nil, err
		}
		columns[i] = col.ID
	}

	coll, err := s.resolver.ResolveCollection(ctx, proj.ID, req.Collection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &BatchResult{
		ProjectID:    proj.ID,
		CollectionID: coll.ID,
		BatchKey:     coll.BatchKey,
		Datapoints:   make(map[string]int64, len(names)),
	}
	for i, name := range names {
		id, err := s.repo.InsertDatapoint(ctx, columns[i], coll.ID, []byte(req.Values[name]), now)
		if err != nil {
			return nil, fmt.Errorf("inserting datapoint for column %q: %w", name, err)
		}
		result.Datapoints[name] = id
	}

	s.logger.Debug("stored batch", "project", req.Project, "columns", len(names), "collection_id", coll.ID)
	return result, nil
}
