package todo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/server/internal/shared/response"
)

// Handler handles HTTP requests for todos.
type Handler struct {
	service *Service
}

// NewHandler creates a new todo handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers todo routes. All routes require an
// authenticated principal in the request context.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	todos := r.Group("/todo")
	{
		todos.POST("", h.Create)
		todos.GET("", h.List)
		todos.GET("/:todoId", h.Get)
		todos.PATCH("/:todoId", h.Update)
		todos.DELETE("/:todoId", h.Delete)
	}
}

// Create handles todo creation.
//
//	@Summary		Create todo
//	@Tags			Todo
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateRequest	true	"Create todo request"
//	@Success		201		{object}	Todo
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/todo [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// List handles listing owned and shared todos.
//
//	@Summary		List todos
//	@Tags			Todo
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ListResponse
//	@Router			/todo [get]
func (h *Handler) List(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles fetching a single todo.
//
//	@Summary		Get todo
//	@Tags			Todo
//	@Produce		json
//	@Security		BearerAuth
//	@Param			todoId	path		int	true	"Todo ID"
//	@Success		200		{object}	Todo
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/todo/{todoId} [get]
func (h *Handler) Get(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	id, ok := getTodoID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), id, email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Update handles todo updates.
//
//	@Summary		Update todo
//	@Tags			Todo
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			todoId	path		int				true	"Todo ID"
//	@Param			request	body		UpdateRequest	true	"Update todo request"
//	@Success		200		{object}	Todo
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/todo/{todoId} [patch]
func (h *Handler) Update(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	id, ok := getTodoID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, email, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete handles todo deletion.
//
//	@Summary		Delete todo
//	@Tags			Todo
//	@Security		BearerAuth
//	@Param			todoId	path	int	true	"Todo ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/todo/{todoId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	email, ok := getEmail(c)
	if !ok {
		return
	}

	id, ok := getTodoID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, email); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTodoNotFound):
		response.NotFound(c, "todo not found")
	case errors.Is(err, ErrInvalidPriority):
		response.BadRequest(c, "invalid priority")
	default:
		response.Internal(c)
	}
}

func getUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		response.Unauthorized(c, "invalid user id")
		return 0, false
	}
	return id, true
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

func getTodoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("todoId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid todo id")
		return 0, false
	}
	return id, true
}
