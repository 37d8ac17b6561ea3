package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
	"github.com/oksasatya/todolist-api/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(t *entity.Todo) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (todo_list_id, user_id, task_name, due_by, task_priority, task_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.ListID, t.UserID, t.TaskName, t.DueBy, t.Priority, t.Status)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID returns the todo with its parent list attached.
func (r *TodoRepository) GetByID(id string) (*entity.Todo, error) {
	ctx := context.Background()
	t := &entity.Todo{}
	l := &entity.TodoList{}

	row := r.pool.QueryRow(ctx, `
		SELECT t.id, t.todo_list_id, t.user_id, t.task_name, t.due_by, t.task_priority, t.task_status,
		       t.created_at, t.updated_at,
		       l.id, l.user_id, l.list_name, l.created_at, l.updated_at
		FROM todos t
		JOIN todo_lists l ON l.id = t.todo_list_id
		WHERE t.id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.ListID, &t.UserID, &t.TaskName, &t.DueBy, &t.Priority, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
		&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t.List = l

	return t, nil
}

func (r *TodoRepository) ListByList(listID string) ([]entity.Todo, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, todo_list_id, user_id, task_name, due_by, task_priority, task_status, created_at, updated_at
		FROM todos
		WHERE todo_list_id = $1
		ORDER BY created_at
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.ListID, &t.UserID, &t.TaskName, &t.DueBy,
			&t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// Update overwrites every mutable field, mirroring a full-payload edit.
func (r *TodoRepository) Update(t *entity.Todo) error {
	ctx := context.Background()
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET task_name = $1, due_by = $2, task_priority = $3, task_status = $4, updated_at = $5
		WHERE id = $6
	`, t.TaskName, t.DueBy, t.Priority, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TodoRepository) Delete(id string) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
