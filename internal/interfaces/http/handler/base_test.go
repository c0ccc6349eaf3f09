package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRender(t *testing.T, result shared.Result, created bool) *httptest.ResponseRecorder {
	t.Helper()
	base := &BaseHandler{}
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		if created {
			base.RenderCreated(c, result)
		} else {
			base.RenderResult(c, result)
		}
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestRenderResult(t *testing.T) {
	t.Run("success maps to 200", func(t *testing.T) {
		w := performRender(t, shared.OK("Category retrieved", gin.H{"name": "CBG"}), false)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.True(t, response.Success)
		assert.Equal(t, "Category retrieved", response.Message)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		w := performRender(t, shared.NotFound("Mine", "abc"), false)

		assert.Equal(t, http.StatusNotFound, w.Code)
		response := decodeResponse(t, w)
		assert.False(t, response.Success)
		assert.Equal(t, "NOT_FOUND", response.ErrorCode)
	})

	t.Run("validation failure maps to 400 with every error", func(t *testing.T) {
		w := performRender(t, shared.Invalid([]string{"name is required", "code is required"}), false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "VALIDATION_ERROR", response.ErrorCode)
		assert.Len(t, response.Errors, 2)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		w := performRender(t, shared.Fail("already there", "ALREADY_EXISTS"), false)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown failure code maps to 500", func(t *testing.T) {
		w := performRender(t, shared.Fail("Operation failed", "LIST_MINES_FAILED"), false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRenderCreated(t *testing.T) {
	t.Run("success maps to 201", func(t *testing.T) {
		w := performRender(t, shared.OK("Mine created", nil), true)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("failure ignores the created status", func(t *testing.T) {
		w := performRender(t, shared.Fail("duplicate", "ALREADY_EXISTS"), true)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestParseFilter(t *testing.T) {
	base := &BaseHandler{}
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		filter, ok := base.parseFilter(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"page":      filter.Page,
			"page_size": filter.PageSize,
			"order_by":  filter.OrderBy,
			"search":    filter.Search,
		})
	})

	t.Run("applies defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.EqualValues(t, 1, got["page"])
		assert.EqualValues(t, 20, got["page_size"])
		assert.Equal(t, "created_at", got["order_by"])
	})

	t.Run("honors query parameters", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?page=3&page_size=50&order_by=name&search=boke", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.EqualValues(t, 3, got["page"])
		assert.EqualValues(t, 50, got["page_size"])
		assert.Equal(t, "boke", got["search"])
	})

	t.Run("rejects an invalid order direction", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?order_dir=sideways", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
