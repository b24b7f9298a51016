package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arsh246/weather-app/internal/errs"
	"github.com/arsh246/weather-app/internal/models"
)

// MemoryStore is an in-process HistoryStore for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]models.SearchRecord // owner key -> record id -> record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]models.SearchRecord)}
}

func (s *MemoryStore) Append(_ context.Context, userID string, rec models.SearchRecord) (string, error) {
	rec.OwnerID = ownerKey(userID)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.records[rec.OwnerID]
	if coll == nil {
		coll = make(map[string]models.SearchRecord)
		s.records[rec.OwnerID] = coll
	}
	id := primitive.NewObjectID().Hex()
	coll[id] = rec
	return id, nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]models.StoredSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StoredSearch, 0)
	for id, rec := range s.records[ownerKey(userID)] {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt record id %s", errs.ErrStorage, id)
		}
		out = append(out, models.StoredSearch{ID: oid, SearchRecord: rec})
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, userID, id string, upd SearchUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.records[ownerKey(userID)]
	rec, ok := coll[id]
	if !ok {
		return fmt.Errorf("%w: search record %s", errs.ErrNotFound, id)
	}
	rec.Temperature = upd.Temperature
	rec.Weather = upd.Weather
	coll[id] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.records[ownerKey(userID)]
	if _, ok := coll[id]; !ok {
		return fmt.Errorf("%w: search record %s", errs.ErrNotFound, id)
	}
	delete(coll, id)
	return nil
}

func (s *MemoryStore) ExportAll(_ context.Context, userID string) ([]models.SearchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SearchRecord, 0)
	for _, rec := range s.records[ownerKey(userID)] {
		out = append(out, rec)
	}
	return out, nil
}
