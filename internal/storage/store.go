// Package storage provides the injectable document and report stores.
// Both backends guarantee atomic per-record read-modify-write; cross-record
// atomicity is not offered and not needed.
package storage

import (
	"context"
	"errors"

	"ezra/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrStoreFull = errors.New("report store is at capacity")
)

type DocumentStore interface {
	Put(ctx context.Context, doc models.Document) error
	Get(ctx context.Context, id string) (models.Document, error)
}

type ReportStore interface {
	Create(ctx context.Context, r models.Report) error
	Get(ctx context.Context, id string) (models.Report, error)
	// Update applies fn to the stored record under the record's lock and
	// persists the result. fn returning an error aborts the update.
	Update(ctx context.Context, id string, fn func(*models.Report) error) error
	// List returns reports sorted by creation time descending, plus the
	// total count for pagination.
	List(ctx context.Context, offset, limit int) ([]models.Report, int, error)
}
