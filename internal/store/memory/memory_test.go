package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/noteapp/internal/notes"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	seeded, err := s.Seed(ctx,
		notes.Draft{Content: "HTML is easy"},
		notes.Draft{Content: "Browser can execute only JavaScript", Important: true},
	)
	require.NoError(t, err)
	require.Len(t, seeded, 2)
	require.NotEqual(t, seeded[0].ID, seeded[1].ID)

	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, seeded, all)

	got, err := s.FindByID(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.Equal(t, seeded[1], *got)

	upd, err := s.UpdateByID(ctx, seeded[0].ID, notes.Draft{Content: "CSS is hard", Important: true})
	require.NoError(t, err)
	require.Equal(t, notes.Note{ID: seeded[0].ID, Content: "CSS is hard", Important: true}, *upd)

	require.NoError(t, s.DeleteByID(ctx, seeded[0].ID))
	require.NoError(t, s.DeleteByID(ctx, seeded[0].ID))
	require.Equal(t, 1, s.Len())

	got, err = s.FindByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_AbsentAndMalformed(t *testing.T) {
	ctx := context.Background()
	s := New()
	unknown := "5b7e8e55-2b79-4c38-9d1b-3f0a5d2b0c11"

	got, err := s.FindByID(ctx, unknown)
	require.NoError(t, err)
	require.Nil(t, got)

	upd, err := s.UpdateByID(ctx, unknown, notes.Draft{Content: "whatever"})
	require.NoError(t, err)
	require.Nil(t, upd)

	require.NoError(t, s.DeleteByID(ctx, unknown))

	_, err = s.FindByID(ctx, "42")
	require.ErrorIs(t, err, notes.ErrMalformedID)
	_, err = s.UpdateByID(ctx, "42", notes.Draft{Content: "whatever"})
	require.ErrorIs(t, err, notes.ErrMalformedID)
	require.ErrorIs(t, s.DeleteByID(ctx, "42"), notes.ErrMalformedID)
}

func TestStore_AcceptsEquivalentUUIDForms(t *testing.T) {
	ctx := context.Background()
	s := New()

	seeded, err := s.Seed(ctx, notes.Draft{Content: "HTML is easy"})
	require.NoError(t, err)
	id := seeded[0].ID

	forms := []string{
		"{" + id + "}",
		"urn:uuid:" + id,
		strings.ReplaceAll(id, "-", ""),
		strings.ToUpper(id),
	}
	for _, form := range forms {
		t.Run(form, func(t *testing.T) {
			got, err := s.FindByID(ctx, form)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, id, got.ID)

			upd, err := s.UpdateByID(ctx, form, notes.Draft{Content: "HTML is easy", Important: true})
			require.NoError(t, err)
			require.NotNil(t, upd)
			require.Equal(t, id, upd.ID)
		})
	}

	require.NoError(t, s.DeleteByID(ctx, "{"+id+"}"))
	require.Equal(t, 0, s.Len())
}
