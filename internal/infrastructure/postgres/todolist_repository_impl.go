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

type TodoListRepository struct {
	pool *pgxpool.Pool
}

func NewTodoListRepository(pool *pgxpool.Pool) *TodoListRepository {
	return &TodoListRepository{pool: pool}
}

func (r *TodoListRepository) Create(l *entity.TodoList) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todo_lists (user_id, list_name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, l.UserID, l.Name)

	return row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID returns the list with its todos and owner attached.
func (r *TodoListRepository) GetByID(id string) (*entity.TodoList, error) {
	ctx := context.Background()
	l := &entity.TodoList{}
	o := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT l.id, l.user_id, l.list_name, l.created_at, l.updated_at,
		       u.id, u.name, u.email, u.created_at, u.updated_at
		FROM todo_lists l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`, id)

	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
		&o.ID, &o.Name, &o.Email, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	l.Owner = o

	tasks, err := r.tasksForLists(ctx, []string{l.ID})
	if err != nil {
		return nil, err
	}
	l.Tasks = tasks[l.ID]
	if l.Tasks == nil {
		l.Tasks = []entity.Todo{}
	}

	return l, nil
}

// ListByOwner returns every list owned by ownerID with todos eagerly attached.
// One query for the lists, one for all their todos.
func (r *TodoListRepository) ListByOwner(ownerID string) ([]entity.TodoList, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, list_name, created_at, updated_at
		FROM todo_lists
		WHERE user_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := make([]entity.TodoList, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var l entity.TodoList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Tasks = []entity.Todo{}
		lists = append(lists, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return lists, nil
	}

	tasks, err := r.tasksForLists(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if ts, ok := tasks[lists[i].ID]; ok {
			lists[i].Tasks = ts
		}
	}

	return lists, nil
}

func (r *TodoListRepository) Update(l *entity.TodoList) error {
	ctx := context.Background()
	l.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE todo_lists
		SET list_name = $1, updated_at = $2
		WHERE id = $3
	`, l.Name, l.UpdatedAt, l.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TodoListRepository) Delete(id string) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `DELETE FROM todo_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TodoListRepository) tasksForLists(ctx context.Context, listIDs []string) (map[string][]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, todo_list_id, user_id, task_name, due_by, task_priority, task_status, created_at, updated_at
		FROM todos
		WHERE todo_list_id = ANY($1)
		ORDER BY created_at
	`, listIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]entity.Todo, len(listIDs))
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.ListID, &t.UserID, &t.TaskName, &t.DueBy,
			&t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out[t.ListID] = append(out[t.ListID], t)
	}
	return out, rows.Err()
}

var _ repository.TodoListRepository = (*TodoListRepository)(nil)
