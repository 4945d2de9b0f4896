package schema

import "time"

// DataType is the declared storage type of a column. Values are stored
// opaque either way; the type is metadata for future readers.
type DataType string

const (
	DataTypeText DataType = "TEXT"
	DataTypeBlob DataType = "BLOB"
)

// ParseDataType converts the SQL type name used in the columns table.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case DataTypeText, DataTypeBlob:
		return DataType(s), nil
	default:
		return "", ErrInvalidType
	}
}

// Project is a named container for one application's data.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	EncodedName string    `json:"encoded_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Column is a named datastream within a project.
type Column struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Name        string    `json:"name"`
	EncodedName string    `json:"encoded_name"`
	DataType    DataType  `json:"data_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Collection is a named batch grouping datapoints within a project.
type Collection struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	BatchKey  string    `json:"batch_key"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCollection is the collection used for writes that name none.
const DefaultCollection = "default"
