package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, "done", gin.H{"value": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"message":"done"`)
	assert.Contains(t, w.Body.String(), `"value":1`)
}

func TestPaginatedEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Paginated(c, "listed", []int{1, 2}, NewPagination(1, 20, 2))
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currentPage":1`)
	assert.Contains(t, w.Body.String(), `"totalItems":2`)
	assert.Contains(t, w.Body.String(), `"hasNextPage":false`)
}

func TestHandleErrorApiError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		HandleError(c, NotFound("Course not found"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "Course not found")
}

func TestHandleErrorUnknown(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		HandleError(c, errors.New("dial tcp: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail must not leak to clients.
	assert.NotContains(t, w.Body.String(), "dial tcp")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
