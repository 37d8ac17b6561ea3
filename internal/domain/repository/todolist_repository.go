package repository

import "github.com/oksasatya/todolist-api/internal/domain/entity"

// TodoListRepository defines the interface for todo list persistence.
// ListByOwner and GetByID attach the list's todos in one logical fetch so
// callers never need a second round trip per list.
type TodoListRepository interface {
	Create(l *entity.TodoList) error
	GetByID(id string) (*entity.TodoList, error)
	ListByOwner(ownerID string) ([]entity.TodoList, error)
	Update(l *entity.TodoList) error
	// Delete removes the list; its todos go with it via the FK cascade.
	Delete(id string) error
}
