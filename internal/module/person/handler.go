package person

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/server/internal/shared/response"
)

// Handler handles HTTP requests for persons.
type Handler struct {
	repo Repository
}

// NewHandler creates a new person handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers person routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/persons", h.List)
}

// List returns all registered persons, used to pick a collaborator
// when sharing a todo.
//
//	@Summary		List persons
//	@Tags			Person
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	Person
//	@Router			/persons [get]
func (h *Handler) List(c *gin.Context) {
	persons, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c)
		return
	}
	c.JSON(http.StatusOK, persons)
}
