package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fkit-io/fkit/internal/domain/schema"
	"github.com/fkit-io/fkit/internal/repository"
)

func seedSchema(t *testing.T, db *DB) (*schema.Column, *schema.Collection) {
	t.Helper()
	repo := NewSchemaRepository(db)
	ctx := context.Background()

	proj := testProject("acme")
	require.NoError(t, repo.CreateProject(ctx, proj))

	col := &schema.Column{
		ProjectID:   proj.ID,
		Name:        "temperature",
		EncodedName: "temperature",
		DataType:    schema.DataTypeText,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.CreateColumn(ctx, col))

	coll := &schema.Collection{ProjectID: proj.ID, Name: "default", BatchKey: "k1", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateCollection(ctx, coll))

	return col, coll
}

func TestDatapointRepository_Insert(t *testing.T) {
	db := NewTestDB(t)
	repo := NewDatapointRepository(db)
	ctx := context.Background()

	col, coll := seedSchema(t, db)

	id, err := repo.InsertDatapoint(ctx, col.ID, coll.ID, []byte("21.5"), time.Unix(1700000000, 0))
	require.NoError(t, err)
	require.NotZero(t, id)

	var value []byte
	var createdAt int64
	err = db.QueryRow(`SELECT value, created_at FROM datapoints WHERE id = ?`, id).Scan(&value, &createdAt)
	require.NoError(t, err)
	require.Equal(t, []byte("21.5"), value)
	require.Equal(t, int64(1700000000), createdAt)
}

func TestDatapointRepository_MissingColumnRejected(t *testing.T) {
	db := NewTestDB(t)
	repo := NewDatapointRepository(db)

	_, coll := seedSchema(t, db)

	_, err := repo.InsertDatapoint(context.Background(), 999, coll.ID, []byte("x"), time.Now())
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
