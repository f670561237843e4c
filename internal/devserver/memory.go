package devserver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/petlist/internal/pets"
)

type memoryStore struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	order []string
}

// NewMemoryStore keeps pets in process memory, listed in insertion order.
func NewMemoryStore() Store {
	return &memoryStore{byID: make(map[string]pets.Pet)}
}

func (s *memoryStore) List(ctx context.Context) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *memoryStore) Create(ctx context.Context, in pets.PetToAdd) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pets.Pet{ID: uuid.NewString(), Name: in.Name, Type: in.Type, Breed: in.Breed, Age: in.Age}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	return p, nil
}

func (s *memoryStore) Update(ctx context.Context, in pets.PetToEdit) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[in.ID]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	p = p.Apply(in)
	s.byID[p.ID] = p
	return p, nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, nil
}
