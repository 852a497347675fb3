package storage

import (
	"context"
	"testing"
	"time"

	"ezra/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	doc := models.Document{ID: "d1", OriginalName: "concept.pdf", Status: models.DocumentProcessed}
	require.NoError(t, s.Put(ctx, doc))

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Put on an existing id replaces the record.
	doc.Status = models.DocumentError
	require.NoError(t, s.Put(ctx, doc))
	got, err = s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentError, got.Status)
}

func TestMemoryReportStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore(10)

	err := s.Update(ctx, "missing", func(r *models.Report) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Create(ctx, models.Report{ID: "r1", Status: models.ReportGenerating, Progress: 10}))

	require.NoError(t, s.Update(ctx, "r1", func(r *models.Report) error {
		r.Status = models.ReportAnalyzing
		r.Progress = 10
		return nil
	}))
	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.ReportAnalyzing, got.Status)

	// A failing mutation leaves the stored record untouched.
	boom := assert.AnError
	err = s.Update(ctx, "r1", func(r *models.Report) error {
		r.Status = models.ReportCompleted
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.ReportAnalyzing, got.Status)
}

func TestMemoryReportStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore(10)
	require.NoError(t, s.Create(ctx, models.Report{ID: "r1", Progress: 10}))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	got.Progress = 99

	again, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Progress)
}

func TestMemoryReportStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore(10)

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.Create(ctx, models.Report{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, total, err := s.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 3)
	assert.Equal(t, "r3", got[0].ID) // newest first
	assert.Equal(t, "r1", got[2].ID)

	// Pagination.
	got, total, err = s.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)

	// Offset past the end yields an empty page, not an error.
	got, total, err = s.List(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}

func TestMemoryReportStoreCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore(2)

	require.NoError(t, s.Create(ctx, models.Report{ID: "r1", Status: models.ReportCompleted}))
	require.NoError(t, s.Create(ctx, models.Report{ID: "r2", Status: models.ReportGenerating}))

	// At capacity: the oldest terminal record is evicted to make room.
	require.NoError(t, s.Create(ctx, models.Report{ID: "r3", Status: models.ReportGenerating}))
	_, err := s.Get(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "r2")
	assert.NoError(t, err)

	// Every remaining record is still running: create fails.
	err = s.Create(ctx, models.Report{ID: "r4", Status: models.ReportGenerating})
	assert.ErrorIs(t, err, ErrStoreFull)

	// Once one finishes, room opens up again.
	require.NoError(t, s.Update(ctx, "r2", func(r *models.Report) error {
		r.Status = models.ReportError
		return nil
	}))
	require.NoError(t, s.Create(ctx, models.Report{ID: "r4", Status: models.ReportGenerating}))
}
