package repository

import (
	"sync"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups"
)

// Store holds the dataset currently being served
type Store struct {
	mu      sync.RWMutex
	current *models.Dataset
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Current returns the served dataset or pickups.ErrNotLoaded
func (s *Store) Current() (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, pickups.ErrNotLoaded
	}
	return s.current, nil
}

// Swap publishes ds and returns the dataset it replaced, if any
func (s *Store) Swap(ds *models.Dataset) *models.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current
	s.current = ds
	return previous
}

// Loaded reports whether a dataset has been published
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
