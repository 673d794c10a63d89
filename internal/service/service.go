package service

import (
	"context"

	"example.com/noteapp/internal/notes"
)

// Service holds the note use cases. It owns no state; everything lives in the Store.
type Service struct {
	store notes.Store
}

func New(store notes.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListNotes(ctx context.Context) ([]notes.Note, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, notes.Unavailable(err)
	}
	return all, nil
}

// GetNote fails with notes.ErrNotFound when id is well formed but unknown.
func (s *Service) GetNote(ctx context.Context, id string) (notes.Note, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return notes.Note{}, notes.Unavailable(err)
	}
	if n == nil {
		return notes.Note{}, notes.ErrNotFound
	}
	return *n, nil
}

// CreateNote validates before anything is persisted.
func (s *Service) CreateNote(ctx context.Context, in notes.Input) (notes.Note, error) {
	d, err := notes.Validate(in)
	if err != nil {
		return notes.Note{}, err
	}
	n, err := s.store.Create(ctx, d)
	if err != nil {
		return notes.Note{}, notes.Unavailable(err)
	}
	return n, nil
}

// ReplaceNote sets both fields from in; it is not a partial merge.
func (s *Service) ReplaceNote(ctx context.Context, id string, in notes.Input) (notes.Note, error) {
	d, err := notes.Validate(in)
	if err != nil {
		return notes.Note{}, err
	}
	n, err := s.store.UpdateByID(ctx, id, d)
	if err != nil {
		return notes.Note{}, notes.Unavailable(err)
	}
	if n == nil {
		return notes.Note{}, notes.ErrNotFound
	}
	return *n, nil
}

// DeleteNote succeeds for unknown ids; only a malformed id or a store failure is reported.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return notes.Unavailable(s.store.DeleteByID(ctx, id))
}
