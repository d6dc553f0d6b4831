package repository

import (
	"context"
	"errors"

	"AvoDash/internal/domain/models"
)

// ErrMissingColumn is returned when a tabular source lacks a required field.
var ErrMissingColumn = errors.New("missing required column")

// RecordSource yields the raw dataset rows. Implementations are read once at startup.
type RecordSource interface {
	Name() string
	Load(ctx context.Context) ([]models.Record, error)
}

type Metrics interface {
	RecordLatency(op string, seconds float64)
	RecordError(kind string)
	RecordMatchedRows(n int)
	RecordCache(hit bool)
	SetDatasetSize(n int)
}
