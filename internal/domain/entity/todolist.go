package entity

import "time"

// TodoList is a named collection of todos belonging to exactly one user.
// UserID is immutable after creation; deleting a list cascades to its todos
// at the database level.
type TodoList struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Tasks is populated by eager reads (index/show), nil otherwise.
	Tasks []Todo

	// Owner is attached on show, nil otherwise.
	Owner *User
}
