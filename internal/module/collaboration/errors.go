package collaboration

import "errors"

var (
	// ErrTodoNotFound is returned when the todo does not exist or the
	// caller does not own it. The two cases are deliberately not
	// distinguished so the API does not reveal other users' todo ids.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrCollaboratorNotFound is returned when the invited person does
	// not exist.
	ErrCollaboratorNotFound = errors.New("collaborator not found")

	// ErrInvalidRequest is returned when a confirmation does not match
	// a pending request: no pending invitation, wrong token, or the
	// caller is not the invited collaborator.
	ErrInvalidRequest = errors.New("invalid collaboration request")
)
