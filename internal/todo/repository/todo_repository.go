package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/todo-rpc/internal/common/db"
	"github.com/AlibekovAA/todo-rpc/internal/todo/domain"
)

const table = "todos"

type TodoRepository interface {
	List(ctx context.Context) ([]domain.Todo, error)
	DeleteByID(ctx context.Context, id string) (domain.DeleteResult, error)
}

type PgTodoRepository struct {
	pool *pgxpool.Pool
}

func NewPgTodoRepository(pool *pgxpool.Pool) *PgTodoRepository {
	return &PgTodoRepository{pool: pool}
}

// List returns every todo in the store's default order.
func (r *PgTodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, `SELECT id, text, created_at, updated_at FROM todos`)
	if err != nil {
		return nil, db.ObserveQuery("list", table, start, err)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, db.ObserveQuery("list", table, start, err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.ObserveQuery("list", table, start, err)
	}

	_ = db.ObserveQuery("list", table, start, nil)
	return todos, nil
}

func (r *PgTodoRepository) DeleteByID(ctx context.Context, id string) (domain.DeleteResult, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`DELETE FROM todos WHERE id = $1 RETURNING id, text, created_at, updated_at`,
		id,
	)

	var t domain.Todo
	err := row.Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = db.ObserveQuery("delete", table, start, nil)
		return domain.DeleteResult{}, nil
	}
	if err != nil {
		return domain.DeleteResult{}, db.ObserveQuery("delete", table, start, err)
	}

	_ = db.ObserveQuery("delete", table, start, nil)
	return domain.DeleteResult{Deleted: &t, RowsAffected: 1}, nil
}
