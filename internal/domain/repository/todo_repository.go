package repository

import "github.com/oksasatya/todolist-api/internal/domain/entity"

// TodoRepository defines the interface for todo persistence.
type TodoRepository interface {
	Create(t *entity.Todo) error
	GetByID(id string) (*entity.Todo, error)
	ListByList(listID string) ([]entity.Todo, error)
	Update(t *entity.Todo) error
	Delete(id string) error
}
