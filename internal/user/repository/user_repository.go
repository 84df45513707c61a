package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/todo-rpc/internal/common/db"
	"github.com/AlibekovAA/todo-rpc/internal/user/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) List(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, `SELECT first_name, last_name, email FROM users`)
	if err != nil {
		return nil, db.ObserveQuery("list", "users", start, err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, db.ObserveQuery("list", "users", start, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.ObserveQuery("list", "users", start, err)
	}

	_ = db.ObserveQuery("list", "users", start, nil)
	return users, nil
}
