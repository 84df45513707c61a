package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/todo-rpc/internal/common/db"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.NewWithWriter(os.Stderr, "test", "warn")
	require.NoError(t, db.Migrate(ctx, log, dsn))

	pool, err := db.NewPool(ctx, log, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPgTodoRepository_DeleteByID(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewPgTodoRepository(pool)

	id := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO todos (id, text) VALUES ($1, NULL)`, id)
	require.NoError(t, err)

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	var found bool
	for _, todo := range todos {
		if todo.ID == id {
			found = true
			assert.Nil(t, todo.Text)
			assert.False(t, todo.CreatedAt.IsZero())
		}
	}
	assert.True(t, found)

	res, err := repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)
	require.NotNil(t, res.Deleted)
	assert.Equal(t, id, res.Deleted.ID)

	res, err = repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, res.RowsAffected)
	assert.Nil(t, res.Deleted)
}

func TestPgTodoRepository_ConcurrentDeleteSameID(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	id := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO todos (id, text) VALUES ($1, 'race')`, id)
	require.NoError(t, err)

	assertSingleDeleteWins(t, NewPgTodoRepository(pool), id, 16)

	var remaining int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM todos WHERE id = $1`, id).Scan(&remaining))
	assert.Zero(t, remaining)
}
