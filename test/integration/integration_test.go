// Package integration exercises the full stack: HTTP transport, schema
// resolver and write coordinator over a real SQLite database.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fkit-io/fkit/internal/domain/ingest"
	"github.com/fkit-io/fkit/internal/domain/schema"
	"github.com/fkit-io/fkit/internal/sqlite"
	"github.com/fkit-io/fkit/internal/transport"
)

type stack struct {
	db     *sqlite.DB
	schema *schema.Service
	ingest *ingest.Service
}

func newStack(t *testing.T) *stack {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	schemaSvc := schema.NewService(sqlite.NewSchemaRepository(db), nil)
	ingestSvc := ingest.NewService(schemaSvc, sqlite.NewDatapointRepository(db), nil)

	return &stack{db: db, schema: schemaSvc, ingest: ingestSvc}
}

func (s *stack) count(t *testing.T, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestWriteCreatesSchemaOnFirstReference(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "acme", Column: "temperature", Value: []byte("21.5")})
	require.NoError(t, err)

	second, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "acme", Column: "temperature", Value: []byte("22.0")})
	require.NoError(t, err)

	// Both writes converge on the same schema rows.
	require.Equal(t, first.ProjectID, second.ProjectID)
	require.Equal(t, first.ColumnID, second.ColumnID)
	require.NotEqual(t, first.DatapointID, second.DatapointID)

	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM projects`))
	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM columns`))
	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM datapoints`))
}

func TestEnsureProjectIdempotent(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.schema.ResolveProject(ctx, "acme")
	require.NoError(t, err)

	second, err := s.schema.ResolveProject(ctx, "acme")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM projects`))
}

func TestConcurrentWritesConvergeOnOneSchemaRow(t *testing.T) {
	s := newStack(t)
	const writers = 20

	var wg sync.WaitGroup
	errs := make([]error, writers)
	results := make([]*ingest.WriteResult, writers)
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.ingest.Write(context.Background(), ingest.WriteRequest{
				Project: "p",
				Column:  "c",
				Value:   fmt.Appendf(nil, "%d", i),
			})
		}()
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		require.NoError(t, errs[i], "writer %d", i)
	}

	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM projects WHERE name = 'p'`))
	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM columns WHERE name = 'c'`))

	columnID := results[0].ColumnID
	for i := 0; i < writers; i++ {
		require.Equal(t, columnID, results[i].ColumnID, "writer %d used a different column row", i)
	}
	require.EqualValues(t, writers, s.count(t, `SELECT COUNT(*) FROM datapoints WHERE column_id = ?`, columnID))
}

func TestWriteThenResolveConsistency(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	result, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "p", Column: "c", Value: []byte("v")})
	require.NoError(t, err)

	proj, err := s.schema.ResolveProject(ctx, "p")
	require.NoError(t, err)
	require.Equal(t, result.ProjectID, proj.ID)

	col, err := s.schema.ResolveColumn(ctx, proj.ID, "c")
	require.NoError(t, err)
	require.Equal(t, result.ColumnID, col.ID)
}

func TestDistinctColumnsShareProject(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "p", Column: "c1", Value: []byte("1")})
	require.NoError(t, err)

	second, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "p", Column: "c2", Value: []byte("2")})
	require.NoError(t, err)

	require.Equal(t, first.ProjectID, second.ProjectID)
	require.NotEqual(t, first.ColumnID, second.ColumnID)
}

func TestCrossProjectIsolation(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "p1", Column: "c", Value: []byte("1")})
	require.NoError(t, err)

	second, err := s.ingest.Write(ctx, ingest.WriteRequest{Project: "p2", Column: "c", Value: []byte("2")})
	require.NoError(t, err)

	require.NotEqual(t, first.ProjectID, second.ProjectID)
	require.NotEqual(t, first.ColumnID, second.ColumnID)

	// Another write to p1's column leaves p2's record count untouched.
	_, err = s.ingest.Write(ctx, ingest.WriteRequest{Project: "p1", Column: "c", Value: []byte("3")})
	require.NoError(t, err)
	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM datapoints WHERE column_id = ?`, first.ColumnID))
	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM datapoints WHERE column_id = ?`, second.ColumnID))
}

func TestBatchSharesOneCollection(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	result, err := s.ingest.WriteBatch(ctx, ingest.BatchRequest{
		Project: "acme",
		Values:  map[string]string{"temperature": "21.5", "humidity": "40", "pressure": "1013"},
	})
	require.NoError(t, err)
	require.Len(t, result.Datapoints, 3)

	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM collections`))
	require.EqualValues(t, 3, s.count(t, `SELECT COUNT(*) FROM datapoints WHERE collection_id = ?`, result.CollectionID))

	// A second unnamed batch reuses the default collection.
	again, err := s.ingest.WriteBatch(ctx, ingest.BatchRequest{
		Project: "acme",
		Values:  map[string]string{"temperature": "22.0"},
	})
	require.NoError(t, err)
	require.Equal(t, result.CollectionID, again.CollectionID)
	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM collections`))
}

func TestEncodedNameCollisionGetsDistinctSlugs(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.schema.ResolveProject(ctx, "ab")
	require.NoError(t, err)

	second, err := s.schema.ResolveProject(ctx, "a-b")
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.EncodedName, second.EncodedName)
	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM projects`))
}

func TestHTTPIngestEndToEnd(t *testing.T) {
	s := newStack(t)
	server := httptest.NewServer(transport.NewServer(s.schema, s.ingest, nil))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/new/acme", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(server.URL+"/acme?temperature=21.5&humidity=40", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.EqualValues(t, 1, s.count(t, `SELECT COUNT(*) FROM projects`))
	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM columns`))
	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM datapoints`))

	resp, err = http.Post(server.URL+"/acme?temperature=22.0", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.EqualValues(t, 2, s.count(t, `SELECT COUNT(*) FROM columns`))
	require.EqualValues(t, 3, s.count(t, `SELECT COUNT(*) FROM datapoints`))
}
