package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager := NewJWTManager("test-secret-key-that-is-long-enough", 15*time.Minute)

	t.Run("rejects missing header", func(t *testing.T) {
		r := gin.New()
		r.Use(Middleware(manager))
		r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		r := gin.New()
		r.Use(Middleware(manager))
		r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sets principal for valid token", func(t *testing.T) {
		token, _, err := manager.GenerateAccessToken(testPerson())
		require.NoError(t, err)

		var gotUserID int64
		var gotEmail string

		r := gin.New()
		r.Use(Middleware(manager))
		r.GET("/probe", func(c *gin.Context) {
			gotUserID = c.GetInt64("user_id")
			gotEmail = c.GetString("email")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), gotUserID)
		assert.Equal(t, "test@example.com", gotEmail)
	})
}
