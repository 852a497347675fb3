package storage

import (
	"context"
	"sort"
	"sync"

	"ezra/internal/models"
)

// MemoryDocumentStore is the default in-process document store.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: map[string]models.Document{}}
}

func (s *MemoryDocumentStore) Put(ctx context.Context, doc models.Document) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryDocumentStore) Get(ctx context.Context, id string) (models.Document, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return models.Document{}, ErrNotFound
	}
	return doc, nil
}

// MemoryReportStore is the default in-process report store. maxReports
// bounds memory use: creating past the cap evicts the oldest terminal
// record, and fails with ErrStoreFull when every record is still running.
type MemoryReportStore struct {
	mu         sync.RWMutex
	reports    map[string]models.Report
	order      []string // insertion order, oldest first
	maxReports int
}

func NewMemoryReportStore(maxReports int) *MemoryReportStore {
	return &MemoryReportStore{
		reports:    map[string]models.Report{},
		maxReports: maxReports,
	}
}

func (s *MemoryReportStore) Create(ctx context.Context, r models.Report) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxReports > 0 && len(s.reports) >= s.maxReports {
		if !s.evictOldestTerminal() {
			return ErrStoreFull
		}
	}
	s.reports[r.ID] = r
	s.order = append(s.order, r.ID)
	return nil
}

func (s *MemoryReportStore) evictOldestTerminal() bool {
	for i, id := range s.order {
		if rec, ok := s.reports[id]; ok && rec.Terminal() {
			delete(s.reports, id)
			s.order = append(s.order[:i], s.order[i+1:]...)
			return true
		}
	}
	return false
}

func (s *MemoryReportStore) Get(ctx context.Context, id string) (models.Report, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return models.Report{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryReportStore) Update(ctx context.Context, id string, fn func(*models.Report) error) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return ErrNotFound
	}
	if err := fn(&r); err != nil {
		return err
	}
	s.reports[id] = r
	return nil
}

func (s *MemoryReportStore) List(ctx context.Context, offset, limit int) ([]models.Report, int, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Report{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}
