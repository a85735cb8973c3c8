package fuzzy

import (
	"context"
	"sync"
)

// Results is the outcome of one background search.
type Results struct {
	Seq     uint64
	Query   string
	Matches []Result
}

// Searcher runs matches off the interaction loop. Starting a search
// cancels the one in flight, and a superseded search never delivers.
type Searcher struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Search matches query against candidates in a goroutine and passes the
// results to deliver unless another search or Cancel came first. deliver
// runs on the search goroutine and must not call back into the Searcher.
// Search returns the sequence number of this search.
func (s *Searcher) Search(query string, candidates []string, deliver func(Results)) uint64 {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		matches, err := MatchContext(ctx, query, candidates)
		if err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.seq {
			return
		}
		deliver(Results{Seq: seq, Query: query, Matches: matches})
	}()
	return seq
}

// Current is the sequence number of the latest search.
func (s *Searcher) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Cancel stops the search in flight. Its results are dropped.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
