// Package memory keeps notes in process memory. It backs tests and STORE_BACKEND=memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"example.com/noteapp/internal/notes"
)

type Store struct {
	mu     sync.RWMutex
	byID   map[string]notes.Note
	order  []string
	issued map[string]struct{}
}

var _ notes.Store = (*Store)(nil)

func New() *Store {
	return &Store{byID: make(map[string]notes.Note), issued: make(map[string]struct{})}
}

// Seed inserts drafts in order and returns the stored notes.
func (s *Store) Seed(ctx context.Context, drafts ...notes.Draft) ([]notes.Note, error) {
	out := make([]notes.Note, 0, len(drafts))
	for _, d := range drafts {
		n, err := s.Create(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]notes.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]notes.Note, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *Store) FindByID(_ context.Context, id string) (*notes.Note, error) {
	id, ok := canonical(id)
	if !ok {
		return nil, notes.ErrMalformedID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, found := s.byID[id]
	if !found {
		return nil, nil
	}
	return &n, nil
}

func (s *Store) Create(_ context.Context, d notes.Draft) (notes.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ids are never handed out twice, even after a delete
	id := uuid.NewString()
	for _, taken := s.issued[id]; taken; _, taken = s.issued[id] {
		id = uuid.NewString()
	}
	s.issued[id] = struct{}{}

	n := notes.Note{ID: id, Content: d.Content, Important: d.Important}
	s.byID[id] = n
	s.order = append(s.order, id)
	return n, nil
}

func (s *Store) UpdateByID(_ context.Context, id string, d notes.Draft) (*notes.Note, error) {
	id, ok := canonical(id)
	if !ok {
		return nil, notes.ErrMalformedID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, found := s.byID[id]
	if !found {
		return nil, nil
	}
	n.Content, n.Important = d.Content, d.Important
	s.byID[id] = n
	return &n, nil
}

func (s *Store) DeleteByID(_ context.Context, id string) error {
	id, ok := canonical(id)
	if !ok {
		return notes.ErrMalformedID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.byID[id]; !found {
		return nil
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// canonical accepts every form uuid.Parse does (braced, urn:uuid:, undashed)
// and returns the dashed lowercase form ids are stored under.
func canonical(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
