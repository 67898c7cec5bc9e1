package collaboration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *serviceFixture, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", email)
		c.Next()
	})
	NewHandler(f.service).RegisterRoutes(r.Group(""))
	return r
}

func TestHandler_Share(t *testing.T) {
	t.Run("returns confirmation message", func(t *testing.T) {
		f := newServiceFixture(t)
		r := newTestRouter(f, "alice@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/todo/10/collaborations/2", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t,
			"You successfully shared your todo with the user Bob. "+
				"Once the user accepts the invite, you'll see them as a collaborator on your todo.",
			resp.Message)
	})

	t.Run("404 for a todo the caller does not own", func(t *testing.T) {
		f := newServiceFixture(t)
		r := newTestRouter(f, "bob@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/todo/10/collaborations/2", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("400 for malformed ids", func(t *testing.T) {
		f := newServiceFixture(t)
		r := newTestRouter(f, "alice@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/todo/abc/collaborations/2", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Confirm(t *testing.T) {
	shareAndToken := func(t *testing.T, f *serviceFixture) string {
		t.Helper()
		_, err := f.service.Share(context.Background(), "alice@example.com", 10, 2)
		require.NoError(t, err)
		req, err := f.repo.FindByTodoAndCollaborator(context.Background(), 10, 2)
		require.NoError(t, err)
		require.NotNil(t, req)
		return req.Token
	}

	t.Run("accepts with valid token", func(t *testing.T) {
		f := newServiceFixture(t)
		token := shareAndToken(t, f)
		r := newTestRouter(f, "bob@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/todo/10/collaborations/2/confirm?token="+token, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "You've confirmed that you'd like to collaborate on this todo.", resp.Message)
	})

	t.Run("400 without token", func(t *testing.T) {
		f := newServiceFixture(t)
		shareAndToken(t, f)
		r := newTestRouter(f, "bob@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/todo/10/collaborations/2/confirm", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 with wrong token", func(t *testing.T) {
		f := newServiceFixture(t)
		shareAndToken(t, f)
		r := newTestRouter(f, "bob@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/todo/10/collaborations/2/confirm?token=forged", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 when another user tries to confirm", func(t *testing.T) {
		f := newServiceFixture(t)
		token := shareAndToken(t, f)
		r := newTestRouter(f, "alice@example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/todo/10/collaborations/2/confirm?token="+token, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
