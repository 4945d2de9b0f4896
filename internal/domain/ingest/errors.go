package ingest

import "errors"

// ErrEmptyBatch indicates a batch write carrying no column/value pairs.
var ErrEmptyBatch = errors.New("empty batch")
