package collaboration

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/server/internal/shared/response"
)

// Handler handles HTTP requests for todo sharing.
type Handler struct {
	service *Service
}

// NewHandler creates a new collaboration handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers collaboration routes under /todo.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/todo/:todoId/collaborations/:collaboratorId", h.Share)
	r.GET("/todo/:todoId/collaborations/:collaboratorId/confirm", h.Confirm)
}

// Share handles sharing a todo with another person.
//
//	@Summary		Share todo with a collaborator
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			todoId			path		int	true	"Todo ID"
//	@Param			collaboratorId	path		int	true	"Collaborator ID"
//	@Success		200				{object}	MessageResponse
//	@Failure		404				{object}	response.ErrorResponse
//	@Router			/todo/{todoId}/collaborations/{collaboratorId} [post]
func (h *Handler) Share(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	todoID, collaboratorID, ok := getIDs(c)
	if !ok {
		return
	}

	name, err := h.service.Share(c.Request.Context(), email, todoID, collaboratorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf(
			"You successfully shared your todo with the user %s. "+
				"Once the user accepts the invite, you'll see them as a collaborator on your todo.",
			name),
	})
}

// Confirm handles accepting a collaboration invitation. This is the
// endpoint behind the link in the invitation email, so the collaborator
// must be logged in when opening it.
//
//	@Summary		Confirm collaboration
//	@Tags			Collaboration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			todoId			path		int		true	"Todo ID"
//	@Param			collaboratorId	path		int		true	"Collaborator ID"
//	@Param			token			query		string	true	"Invitation token"
//	@Success		200				{object}	MessageResponse
//	@Failure		400				{object}	response.ErrorResponse
//	@Router			/todo/{todoId}/collaborations/{collaboratorId}/confirm [get]
func (h *Handler) Confirm(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	todoID, collaboratorID, ok := getIDs(c)
	if !ok {
		return
	}

	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "invalid collaboration request")
		return
	}

	ok, err := h.service.Confirm(c.Request.Context(), email, todoID, collaboratorID, token)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !ok {
		response.BadRequest(c, "invalid collaboration request")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message: "You've confirmed that you'd like to collaborate on this todo.",
	})
}

// MessageResponse carries a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTodoNotFound):
		response.NotFound(c, "todo not found")
	case errors.Is(err, ErrCollaboratorNotFound):
		response.NotFound(c, "collaborator not found")
	case errors.Is(err, ErrInvalidRequest):
		response.BadRequest(c, "invalid collaboration request")
	default:
		response.Internal(c)
	}
}

func getEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get("email")
	if !exists {
		response.Unauthorized(c, "")
		return "", false
	}
	email, ok := v.(string)
	if !ok || email == "" {
		response.Unauthorized(c, "invalid email")
		return "", false
	}
	return email, true
}

func getIDs(c *gin.Context) (todoID, collaboratorID int64, ok bool) {
	todoID, err := strconv.ParseInt(c.Param("todoId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid todo id")
		return 0, 0, false
	}
	collaboratorID, err = strconv.ParseInt(c.Param("collaboratorId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid collaborator id")
		return 0, 0, false
	}
	return todoID, collaboratorID, true
}
