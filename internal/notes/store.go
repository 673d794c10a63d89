package notes

import "context"

// Store is the persistence contract every backend implements.
//
// FindByID and UpdateByID return a nil note, not an error, when nothing matches.
// DeleteByID succeeds whether or not the note existed. Any id that does not match the
// backend's identifier syntax yields ErrMalformedID; I/O failures are wrapped with Unavailable.
type Store interface {
	ListAll(ctx context.Context) ([]Note, error)
	FindByID(ctx context.Context, id string) (*Note, error)
	Create(ctx context.Context, d Draft) (Note, error)
	UpdateByID(ctx context.Context, id string, d Draft) (*Note, error)
	DeleteByID(ctx context.Context, id string) error
}
