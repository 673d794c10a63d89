// Package postgres stores notes as JSONB documents keyed by UUID.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/notes"
)

// invalid_text_representation, raised when a value cannot be cast to uuid.
const sqlStateInvalidText = "22P02"

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS notes (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		doc        jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)
`

const (
	listSQL   = `SELECT id::text, doc FROM notes ORDER BY created_at, id`
	findSQL   = `SELECT id::text, doc FROM notes WHERE id = $1`
	insertSQL = `INSERT INTO notes (doc) VALUES ($1) RETURNING id::text, doc`
	updateSQL = `UPDATE notes SET doc = $2 WHERE id = $1 RETURNING id::text, doc`
	deleteSQL = `DELETE FROM notes WHERE id = $1`
)

// document is the persisted shape of a note body.
type document struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

type Store struct {
	pool Pool
}

var _ notes.Store = (*Store)(nil)

func New(pool Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the notes table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure notes schema: %w", err)
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]notes.Note, error) {
	rows, err := s.pool.Query(ctx, listSQL)
	if err != nil {
		return nil, unavailable(ctx, "list notes", err)
	}
	defer rows.Close()

	out := make([]notes.Note, 0, 32)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, unavailable(ctx, "scan note", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(ctx, "iterate notes", err)
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*notes.Note, error) {
	id, ok := canonical(id)
	if !ok {
		return nil, notes.ErrMalformedID
	}

	n, err := scanNote(s.pool.QueryRow(ctx, findSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(ctx, "get note", err)
	}
	return &n, nil
}

func (s *Store) Create(ctx context.Context, d notes.Draft) (notes.Note, error) {
	doc, err := json.Marshal(document{Content: d.Content, Important: d.Important})
	if err != nil {
		return notes.Note{}, fmt.Errorf("encode note document: %w", err)
	}

	n, err := scanNote(s.pool.QueryRow(ctx, insertSQL, doc))
	if err != nil {
		return notes.Note{}, unavailable(ctx, "create note", err)
	}

	logger.Log(ctx).Debug(ctx, "note created", zap.String("noteID", n.ID))
	return n, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, d notes.Draft) (*notes.Note, error) {
	id, ok := canonical(id)
	if !ok {
		return nil, notes.ErrMalformedID
	}

	doc, err := json.Marshal(document{Content: d.Content, Important: d.Important})
	if err != nil {
		return nil, fmt.Errorf("encode note document: %w", err)
	}

	n, err := scanNote(s.pool.QueryRow(ctx, updateSQL, id, doc))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(ctx, "update note", err)
	}
	return &n, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	id, ok := canonical(id)
	if !ok {
		return notes.ErrMalformedID
	}

	tag, err := s.pool.Exec(ctx, deleteSQL, id)
	if err != nil {
		return classify(ctx, "delete note", err)
	}

	logger.Log(ctx).Debug(ctx, "note deleted",
		zap.String("noteID", id), zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func scanNote(row pgx.Row) (notes.Note, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return notes.Note{}, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return notes.Note{}, fmt.Errorf("decode note %s: %w", id, err)
	}
	return notes.Note{ID: id, Content: doc.Content, Important: doc.Important}, nil
}

// classify maps a failed uuid cast to ErrMalformedID and everything else to Unavailable.
func classify(ctx context.Context, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateInvalidText {
		return notes.ErrMalformedID
	}
	return unavailable(ctx, op, err)
}

func unavailable(ctx context.Context, op string, err error) error {
	logger.Log(ctx).Error(ctx, "postgres: "+op+" failed", zap.Error(err))
	return notes.Unavailable(fmt.Errorf("%s: %w", op, err))
}

// canonical rewrites any form uuid.Parse takes into the dashed form, since
// the uuid cast rejects urn:uuid: prefixes.
func canonical(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
