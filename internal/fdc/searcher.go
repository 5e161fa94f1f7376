package fdc

import (
	"context"
	"sync"

	"github.com/tnguyen/foodlog/internal/domain"
)

// Searcher serializes searches with last-query-wins semantics: starting a new
// search cancels the one in flight, and a canceled search never delivers
// results. Safe for concurrent use.
type Searcher struct {
	client Client

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    int
}

func NewSearcher(client Client) *Searcher {
	return &Searcher{client: client}
}

// Search issues a lookup for query, superseding any in-flight search. When a
// newer search arrives before this one finishes, the result is dropped and
// context.Canceled is returned.
func (s *Searcher) Search(ctx context.Context, query string) ([]*domain.Food, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	foods, err := s.client.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// A newer search took over while this one was running.
		return nil, context.Canceled
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// Cancel aborts any in-flight search without starting a new one.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.seq++
	}
}
