package match

import (
	"sort"
	"sync"

	"github.com/rafael/resume-match/internal/types"
)

// Store is the in-memory match record map. Results live for the process
// lifetime: no eviction, no size bound, no persistence. Results are never
// mutated after insertion, so the lock only guards the map itself.
type Store struct {
	mu      sync.RWMutex
	results map[string]*types.MatchResult
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{results: make(map[string]*types.MatchResult)}
}

// Put inserts the result keyed by its ID, overwriting any previous entry.
func (s *Store) Put(result *types.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
}

// Get returns the full result for id, or false when absent.
func (s *Store) Get(id string) (*types.MatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	return result, ok
}

// List returns summaries of every stored result, most recent first.
func (s *Store) List() []types.MatchSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]types.MatchSummary, 0, len(s.results))
	for _, result := range s.results {
		summaries = append(summaries, result.Summary())
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// Clear removes every entry. Reserved for test isolation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[string]*types.MatchResult)
}
