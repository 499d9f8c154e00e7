package grid

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bingo-service/internal/account"
	"bingo-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, id := newStore(t)

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Anonymous") == "" {
			c.Request = c.Request.WithContext(middleware.WithAccount(c.Request.Context(), &account.Account{ID: id}))
		}
		c.Next()
	})
	NewHandler(s).RegisterRoutes(api)
	return r
}

func call(r http.Handler, method string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, "/api/grid", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGridEndpoints(t *testing.T) {
	r := newRouter(t)

	w := call(r, http.MethodGet, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty gridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Equal(t, make([]bool, Size), empty.Cells)
	assert.Nil(t, empty.LastUpdated)

	w = call(r, http.MethodPut, saveRequest{Cells: pattern()})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodGet, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved gridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, pattern(), saved.Cells)
	assert.NotNil(t, saved.LastUpdated)

	w = call(r, http.MethodPut, saveRequest{Cells: make([]bool, 24)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGridRequiresAccount(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/grid", nil)
	req.Header.Set("X-Test-Anonymous", "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
