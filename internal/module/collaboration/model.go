package collaboration

import "time"

// CollaborationRequest is a pending invitation to collaborate on a
// todo. It exists only while the invitation is pending; confirming a
// collaboration deletes the record.
//
// The unique index on (todo_id, collaborator_id) is what makes request
// creation idempotent: concurrent requests for the same pair are
// serialized by the store, not by service logic.
type CollaborationRequest struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TodoID         int64     `json:"todo_id" gorm:"not null;uniqueIndex:idx_collab_todo_collaborator"`
	CollaboratorID int64     `json:"collaborator_id" gorm:"not null;uniqueIndex:idx_collab_todo_collaborator"`
	Token          string    `json:"-" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (CollaborationRequest) TableName() string {
	return "todo_collaboration_requests"
}
