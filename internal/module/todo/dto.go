package todo

import "time"

// CreateRequest is the payload for creating a todo.
type CreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateRequest is the payload for updating a todo.
type UpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Status      *Status    `json:"status"`
}

// ListResponse groups todos the caller owns and todos shared with them.
type ListResponse struct {
	Owned  []*Todo `json:"owned"`
	Shared []*Todo `json:"shared"`
}
