package db

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func TestOpenPostgres_BadURL(t *testing.T) {
	pool, err := OpenPostgres(context.Background(), "postgres://u:p@host:notaport/db", PostgresOptions{})
	require.Error(t, err)
	require.Nil(t, pool)
}

func TestApplyPostgresOptions(t *testing.T) {
	t.Run("overrides set values", func(t *testing.T) {
		cfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/notes")
		require.NoError(t, err)

		applyPostgresOptions(cfg, PostgresOptions{
			MaxConns:        20,
			MinConns:        2,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: time.Minute,
		})
		require.Equal(t, int32(20), cfg.MaxConns)
		require.Equal(t, int32(2), cfg.MinConns)
		require.Equal(t, time.Hour, cfg.MaxConnLifetime)
		require.Equal(t, time.Minute, cfg.MaxConnIdleTime)
	})

	t.Run("zero keeps pgx defaults", func(t *testing.T) {
		cfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/notes")
		require.NoError(t, err)
		want := *cfg

		applyPostgresOptions(cfg, PostgresOptions{})
		require.Equal(t, want.MaxConns, cfg.MaxConns)
		require.Equal(t, want.MinConns, cfg.MinConns)
		require.Equal(t, want.MaxConnLifetime, cfg.MaxConnLifetime)
	})

	t.Run("oversized pool is capped", func(t *testing.T) {
		cfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/notes")
		require.NoError(t, err)

		applyPostgresOptions(cfg, PostgresOptions{MaxConns: math.MaxInt, MinConns: math.MaxInt})
		require.Equal(t, int32(math.MaxInt32), cfg.MaxConns)
		require.Equal(t, int32(math.MaxInt32), cfg.MinConns)
	})
}

func TestClampInt32(t *testing.T) {
	require.Equal(t, int32(7), clampInt32(7))
	require.Equal(t, int32(math.MaxInt32), clampInt32(math.MaxInt32))
	require.Equal(t, int32(math.MaxInt32), clampInt32(math.MaxInt))
}

func TestOpenMongo_BadURI(t *testing.T) {
	client, err := OpenMongo(context.Background(), "notmongo://localhost")
	require.Error(t, err)
	require.Nil(t, client)
}
