package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/inburst/prhub/datasource"
)

// Store holds the rows served by the API. Every refresh replaces them as a
// whole.
type Store struct {
	ds *datasource.Datasource

	mutex       sync.RWMutex
	pulls       []*datasource.PullRequest
	refreshedAt time.Time
	lastErr     error
}

func NewStore(ds *datasource.Datasource) *Store {
	return &Store{ds: ds}
}

// Refresh lists the pull requests again. On failure the previous rows stay.
func (s *Store) Refresh(ctx context.Context) error {
	pulls, err := s.ds.ListPulls(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastErr = err
	if err != nil {
		return err
	}
	s.pulls = pulls
	s.refreshedAt = time.Now()
	return nil
}

func (s *Store) Pulls() []*datasource.PullRequest {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.pulls
}

func (s *Store) Find(id int) *datasource.PullRequest {
	for _, pr := range s.Pulls() {
		if pr.ID == id {
			return pr
		}
	}
	return nil
}

// Status reports when the rows were last replaced and the error of the last
// refresh.
func (s *Store) Status() (time.Time, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.refreshedAt, s.lastErr
}
