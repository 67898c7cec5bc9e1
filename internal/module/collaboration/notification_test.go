package collaboration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/server/internal/module/person"
	"github.com/todoapp/server/internal/module/todo"
)

func TestNotificationRoundTrip(t *testing.T) {
	req := &CollaborationRequest{ID: 1, TodoID: 10, CollaboratorID: 2, Token: "tok123"}
	owner := &person.Person{ID: 1, Name: "Alice", Email: "alice@example.com"}
	collaborator := &person.Person{ID: 2, Name: "Bob", Email: "bob@example.com"}
	item := &todo.Todo{
		ID:          10,
		Title:       "Buy milk",
		Description: "Two liters",
		Priority:    todo.PriorityMedium,
		OwnerID:     owner.ID,
		Owner:       owner,
	}

	n := NewNotification(req, item, collaborator)
	body, err := n.Marshal()
	require.NoError(t, err)

	// Field names are part of the queue contract; consumers written
	// against the documented payload must keep working.
	assert.Contains(t, body, `"collaboratorEmail":"bob@example.com"`)
	assert.Contains(t, body, `"collaboratorId":2`)
	assert.Contains(t, body, `"todoPriority":"MEDIUM"`)
	assert.Contains(t, body, `"todoId":10`)
	assert.Contains(t, body, `"token":"tok123"`)

	decoded, err := UnmarshalNotification(body)
	require.NoError(t, err)
	assert.Equal(t, n, decoded)
}

func TestUnmarshalNotificationRejectsGarbage(t *testing.T) {
	_, err := UnmarshalNotification("{truncated")
	assert.Error(t, err)
}
