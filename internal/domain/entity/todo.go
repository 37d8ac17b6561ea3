package entity

import "time"

// Priority is the task priority enum.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a single task inside a list.
// UserID is a denormalized copy of the owning list's UserID taken at creation
// time; list ownership never changes, so the two cannot diverge.
type Todo struct {
	ID        string
	ListID    string
	UserID    string
	TaskName  string
	DueBy     time.Time
	Priority  Priority
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// List is attached on show, nil otherwise.
	List *TodoList
}
