package collaboration

import (
	"encoding/json"
	"fmt"

	"github.com/todoapp/server/internal/module/person"
	"github.com/todoapp/server/internal/module/todo"
)

// Notification is the queue payload describing a collaboration request.
// It is a snapshot taken at share time: later changes to the todo or
// the collaborator do not affect messages already enqueued.
type Notification struct {
	CollaboratorEmail string        `json:"collaboratorEmail"`
	CollaboratorName  string        `json:"collaboratorName"`
	CollaboratorID    int64         `json:"collaboratorId"`
	TodoTitle         string        `json:"todoTitle"`
	TodoDescription   string        `json:"todoDescription"`
	TodoPriority      todo.Priority `json:"todoPriority"`
	TodoID            int64         `json:"todoId"`
	Token             string        `json:"token"`
}

// NewNotification builds the queue payload for a freshly created
// collaboration request.
func NewNotification(req *CollaborationRequest, t *todo.Todo, collaborator *person.Person) *Notification {
	return &Notification{
		CollaboratorEmail: collaborator.Email,
		CollaboratorName:  collaborator.Name,
		CollaboratorID:    collaborator.ID,
		TodoTitle:         t.Title,
		TodoDescription:   t.Description,
		TodoPriority:      t.Priority,
		TodoID:            t.ID,
		Token:             req.Token,
	}
}

// Marshal encodes the notification as a JSON message body.
func (n *Notification) Marshal() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("marshal notification: %w", err)
	}
	return string(b), nil
}

// UnmarshalNotification decodes a queue message body.
func UnmarshalNotification(body string) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(body), &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &n, nil
}
