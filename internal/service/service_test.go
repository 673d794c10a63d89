package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/noteapp/internal/notes"
)

type stubStore struct {
	listFn   func(context.Context) ([]notes.Note, error)
	findFn   func(context.Context, string) (*notes.Note, error)
	createFn func(context.Context, notes.Draft) (notes.Note, error)
	updateFn func(context.Context, string, notes.Draft) (*notes.Note, error)
	deleteFn func(context.Context, string) error
}

func (s stubStore) ListAll(ctx context.Context) ([]notes.Note, error) { return s.listFn(ctx) }
func (s stubStore) FindByID(ctx context.Context, id string) (*notes.Note, error) {
	return s.findFn(ctx, id)
}
func (s stubStore) Create(ctx context.Context, d notes.Draft) (notes.Note, error) {
	return s.createFn(ctx, d)
}
func (s stubStore) UpdateByID(ctx context.Context, id string, d notes.Draft) (*notes.Note, error) {
	return s.updateFn(ctx, id, d)
}
func (s stubStore) DeleteByID(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestService_ListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		want := []notes.Note{{ID: "a", Content: "HTML is easy"}}
		svc := New(stubStore{listFn: func(context.Context) ([]notes.Note, error) { return want, nil }})

		got, err := svc.ListNotes(ctx)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("store outage", func(t *testing.T) {
		boom := errors.New("boom")
		svc := New(stubStore{listFn: func(context.Context) ([]notes.Note, error) { return nil, boom }})

		_, err := svc.ListNotes(ctx)
		require.ErrorIs(t, err, boom)
		require.Equal(t, notes.KindStoreUnavailable, notes.KindOf(err))
	})
}

func TestService_GetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := New(stubStore{findFn: func(_ context.Context, id string) (*notes.Note, error) {
			require.Equal(t, "abc", id)
			return &notes.Note{ID: id, Content: "HTML is easy"}, nil
		}})
		n, err := svc.GetNote(ctx, "abc")
		require.NoError(t, err)
		require.Equal(t, "HTML is easy", n.Content)
	})

	t.Run("absent is not found", func(t *testing.T) {
		svc := New(stubStore{findFn: func(context.Context, string) (*notes.Note, error) { return nil, nil }})
		_, err := svc.GetNote(ctx, "abc")
		require.ErrorIs(t, err, notes.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := New(stubStore{findFn: func(context.Context, string) (*notes.Note, error) {
			return nil, notes.ErrMalformedID
		}})
		_, err := svc.GetNote(ctx, "abc")
		require.ErrorIs(t, err, notes.ErrMalformedID)
	})
}

func TestService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid never reaches the store", func(t *testing.T) {
		svc := New(stubStore{createFn: func(context.Context, notes.Draft) (notes.Note, error) {
			t.Fatal("store must not be called")
			return notes.Note{}, nil
		}})

		_, err := svc.CreateNote(ctx, notes.Input{})
		require.Equal(t, notes.KindInvalid, notes.KindOf(err))

		_, err = svc.CreateNote(ctx, notes.Input{Content: strPtr("abc")})
		require.Equal(t, notes.KindInvalid, notes.KindOf(err))
	})

	t.Run("defaults important to false", func(t *testing.T) {
		svc := New(stubStore{createFn: func(_ context.Context, d notes.Draft) (notes.Note, error) {
			require.Equal(t, notes.Draft{Content: "HTML is easy"}, d)
			return notes.Note{ID: "1", Content: d.Content, Important: d.Important}, nil
		}})

		n, err := svc.CreateNote(ctx, notes.Input{Content: strPtr("HTML is easy")})
		require.NoError(t, err)
		require.Equal(t, notes.Note{ID: "1", Content: "HTML is easy"}, n)
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("boom")
		svc := New(stubStore{createFn: func(context.Context, notes.Draft) (notes.Note, error) {
			return notes.Note{}, boom
		}})
		_, err := svc.CreateNote(ctx, notes.Input{Content: strPtr("HTML is easy")})
		require.ErrorIs(t, err, boom)
	})
}

func TestService_ReplaceNote(t *testing.T) {
	ctx := context.Background()

	t.Run("validates like create", func(t *testing.T) {
		svc := New(stubStore{updateFn: func(context.Context, string, notes.Draft) (*notes.Note, error) {
			t.Fatal("store must not be called")
			return nil, nil
		}})
		_, err := svc.ReplaceNote(ctx, "x", notes.Input{Content: strPtr("abcd"), Important: boolPtr(true)})
		require.Equal(t, notes.KindInvalid, notes.KindOf(err))
	})

	t.Run("absent is not found", func(t *testing.T) {
		svc := New(stubStore{updateFn: func(context.Context, string, notes.Draft) (*notes.Note, error) {
			return nil, nil
		}})
		_, err := svc.ReplaceNote(ctx, "x", notes.Input{Content: strPtr("HTML is easy")})
		require.ErrorIs(t, err, notes.ErrNotFound)
	})

	t.Run("replaces both fields", func(t *testing.T) {
		svc := New(stubStore{updateFn: func(_ context.Context, id string, d notes.Draft) (*notes.Note, error) {
			require.Equal(t, notes.Draft{Content: "CSS is hard"}, d)
			return &notes.Note{ID: id, Content: d.Content, Important: d.Important}, nil
		}})
		n, err := svc.ReplaceNote(ctx, "x", notes.Input{Content: strPtr("CSS is hard")})
		require.NoError(t, err)
		require.Equal(t, notes.Note{ID: "x", Content: "CSS is hard"}, n)
	})
}

func TestService_DeleteNote(t *testing.T) {
	ctx := context.Background()

	svc := New(stubStore{deleteFn: func(context.Context, string) error { return nil }})
	require.NoError(t, svc.DeleteNote(ctx, "x"))

	svc = New(stubStore{deleteFn: func(context.Context, string) error { return notes.ErrMalformedID }})
	require.ErrorIs(t, svc.DeleteNote(ctx, "x"), notes.ErrMalformedID)
}
