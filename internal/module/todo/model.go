package todo

import (
	"time"

	"github.com/todoapp/server/internal/module/person"
)

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Status of a todo.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusDone Status = "DONE"
)

// Todo is a task owned by one person and optionally shared with
// collaborators.
type Todo struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority" gorm:"not null;default:LOW"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `json:"status" gorm:"not null;default:OPEN"`
	OwnerID     int64      `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations (not loaded by default)
	Owner         *person.Person  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Collaborators []person.Person `json:"collaborators,omitempty" gorm:"many2many:todo_collaborators;"`
}

// TableName returns the database table name.
func (Todo) TableName() string {
	return "todos"
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
