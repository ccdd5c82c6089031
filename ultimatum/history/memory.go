package history

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]map[int]GenerationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]map[int]GenerationRecord)
	return nil
}

func (s *MemoryStore) SaveGeneration(_ context.Context, record GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	run, ok := s.runs[record.RunID]
	if !ok {
		run = make(map[int]GenerationRecord)
		s.runs[record.RunID] = run
	}
	run[record.Generation] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) GetHistory(_ context.Context, runID string) ([]GenerationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, errors.New("store is not initialized")
	}
	run, ok := s.runs[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]GenerationRecord, 0, len(run))
	for _, r := range run {
		out = append(out, cloneRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Generation < out[j].Generation })
	return out, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneRecord(r GenerationRecord) GenerationRecord {
	r.ProposerCounts = maps.Clone(r.ProposerCounts)
	r.ResponderCounts = maps.Clone(r.ResponderCounts)
	return r
}
