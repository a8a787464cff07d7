package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethanolivertroy/crosswalk/internal/catalog"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// MemoryStore keeps records in process. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[model.Framework][]model.ControlRecord
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[model.Framework][]model.ControlRecord)}
}

// NewSeededMemoryStore creates a store holding the built-in catalogs
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	for fw, records := range catalog.All() {
		s.records[fw] = records
	}
	return s
}

func (s *MemoryStore) Frameworks(ctx context.Context) ([]model.Framework, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fws := make([]model.Framework, 0, len(s.records))
	for fw := range s.records {
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)
	return fws, nil
}

func (s *MemoryStore) Load(ctx context.Context, fw model.Framework) ([]model.ControlRecord, error) {
	if err := checkFramework(fw); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.records[fw]
	if !ok {
		return nil, fmt.Errorf("%s: %w", fw, ErrNotFound)
	}
	return model.CloneRecords(records), nil
}

func (s *MemoryStore) Save(ctx context.Context, fw model.Framework, records []model.ControlRecord) error {
	if err := checkFramework(fw); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	copied := stamp(fw, model.CloneRecords(records))
	if copied == nil {
		copied = []model.ControlRecord{}
	}

	s.mu.Lock()
	s.records[fw] = copied
	s.mu.Unlock()
	return nil
}
