package ingest

// WriteRequest carries one observation addressed by name. Collection is
// optional; an empty value targets the project's default collection.
type WriteRequest struct {
	Project    string
	Column     string
	Collection string
	Value      []byte
}

// WriteResult reports the ids a successful write resolved to.
type WriteResult struct {
	DatapointID  int64 `json:"datapoint_id"`
	ProjectID    int64 `json:"project_id"`
	ColumnID     int64 `json:"column_id"`
	CollectionID int64 `json:"collection_id"`
}

// BatchRequest carries one ingest batch: several column/value pairs written
// together under one collection.
type BatchRequest struct {
	Project    string
	Collection string
	Values     map[string]string
}

// BatchResult reports the outcome of a batch write.
type BatchResult struct {
	ProjectID    int64            `json:"project_id"`
	CollectionID int64            `json:"collection_id"`
	BatchKey     string           `json:"batch_key"`
	Datapoints   map[string]int64 `json:"datapoints"`
}
