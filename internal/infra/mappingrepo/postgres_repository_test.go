package mappingrepo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Runs only against a disposable database: the table is truncated.
func TestPostgresRepositoryStoreBehaviour(t *testing.T) {
	dsn := os.Getenv("MAPPINGS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MAPPINGS_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation is idempotent")
	_, err = pool.Exec(ctx, `TRUNCATE mood_mappings`)
	require.NoError(t, err)

	exerciseStore(t, repo, 2)
}
