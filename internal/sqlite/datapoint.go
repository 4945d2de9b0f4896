package sqlite

import (
	"context"
	"time"
)

// DatapointRepository implements ingest.Repository for SQLite.
type DatapointRepository struct {
	db *DB
}

// NewDatapointRepository creates a new DatapointRepository.
func NewDatapointRepository(db *DB) *DatapointRepository {
	return &DatapointRepository{db: db}
}

// InsertDatapoint appends one value record and returns its assigned id.
func (r *DatapointRepository) InsertDatapoint(ctx context.Context, columnID, collectionID int64, value []byte, createdAt time.Time) (int64, error) {
	query := `
		INSERT INTO datapoints (column_id, collection_id, value, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, columnID, collectionID, value, createdAt.Unix()).Scan(&id)
	if err != nil {
		return 0, storageErr(err, "", "")
	}
	return id, nil
}
