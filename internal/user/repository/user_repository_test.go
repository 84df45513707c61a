package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/todo-rpc/internal/common/db"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
)

func TestPgUserRepository_List(t *testing.T) {
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
	defer pool.Close()

	email := uuid.NewString() + "@example.com"
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email) VALUES ($1, 'Ada', 'Lovelace', $2)`,
		uuid.NewString(), email,
	)
	require.NoError(t, err)
	defer pool.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, email)

	users, err := NewPgUserRepository(pool).List(ctx)
	require.NoError(t, err)

	var found bool
	for _, u := range users {
		if u.Email == email {
			found = true
			assert.Equal(t, "Ada", u.FirstName)
			assert.Equal(t, "Lovelace", u.LastName)
		}
	}
	assert.True(t, found)
}
