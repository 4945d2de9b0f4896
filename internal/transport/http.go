// Package transport exposes the ingest API over HTTP. Every query
// parameter of a write request is a column/value pair, matching how
// clients push observations: POST /{project}?temperature=21.5&humidity=40
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkit-io/fkit/internal/domain/ingest"
	"github.com/fkit-io/fkit/internal/domain/schema"
	"github.com/fkit-io/fkit/internal/repository"
)

// CollectionHeader names the collection a write batch belongs to. Carried
// as a header because every query parameter is data.
const CollectionHeader = "X-Fkit-Collection"

// SchemaService is the slice of the schema resolver the API needs.
type SchemaService interface {
	ResolveProject(ctx context.Context, name string) (*schema.Project, error)
	DefineColumn(ctx context.Context, projectID int64, name string, dataType schema.DataType) (*schema.Column, error)
	Projects(ctx context.Context) ([]schema.Project, error)
	Columns(ctx context.Context, projectID int64) ([]schema.Column, error)
}

// IngestService is the slice of the write coordinator the API needs.
type IngestService interface {
	WriteBatch(ctx context.Context, req ingest.BatchRequest) (*ingest.BatchResult, error)
}

// Server wires HTTP handlers.
type Server struct {
	schema SchemaService
	ingest IngestService
	logger *slog.Logger
}

// NewServer creates the API router.
func NewServer(schemaSvc SchemaService, ingestSvc IngestService, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{schema: schemaSvc, ingest: ingestSvc, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Get("/projects", srv.handleListProjects)
	r.Post("/new/{project}", srv.handleEnsureProject)
	r.Post("/{project}", srv.handleWrite)
	r.Get("/{project}/columns", srv.handleListColumns)
	r.Post("/{project}/columns", srv.handleDefineColumns)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleEnsureProject creates the named project if absent. Idempotent:
// repeating the call returns the same project.
func (s *Server) handleEnsureProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.schema.ResolveProject(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

// handleWrite stores one batch of observations. Each query parameter is a
// column/value pair; repeated parameters keep the first value.
func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	values := make(map[string]string)
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}

	result, err := s.ingest.WriteBatch(r.Context(), ingest.BatchRequest{
		Project:    chi.URLParam(r, "project"),
		Collection: r.Header.Get(CollectionHeader),
		Values:     values,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

// handleDefineColumns pre-creates columns with declared types. Each query
// parameter is a column/type pair, e.g. ?temperature=TEXT&payload=BLOB.
func (s *Server) handleDefineColumns(w http.ResponseWriter, r *http.Request) {
	proj, err := s.schema.ResolveProject(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var columns []schema.Column
	for name, vals := range r.URL.Query() {
		dataType := schema.DataTypeText
		if len(vals) > 0 && vals[0] != "" {
			if dataType, err = schema.ParseDataType(vals[0]); err != nil {
				s.writeError(w, err)
				return
			}
		}
		col, err := s.schema.DefineColumn(r.Context(), proj.ID, name, dataType)
		if err != nil {
			s.writeError(w, err)
			return
		}
		columns = append(columns, *col)
	}

	s.writeJSON(w, http.StatusOK, columns)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.schema.Projects(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if projects == nil {
		projects = []schema.Project{}
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	proj, err := s.schema.ResolveProject(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	columns, err := s.schema.Columns(r.Context(), proj.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if columns == nil {
		columns = []schema.Column{}
	}
	s.writeJSON(w, http.StatusOK, columns)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schema.ErrInvalidName),
		errors.Is(err, schema.ErrInvalidType),
		errors.Is(err, ingest.ErrEmptyBatch):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
