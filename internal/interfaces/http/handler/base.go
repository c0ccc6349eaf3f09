package handler

import (
	"net/http"

	"github.com/bauxite/backend/internal/application/shared"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides the shared plumbing between service results and
// HTTP responses
type BaseHandler struct{}

// RenderResult writes a service result with 200 on success and a
// status derived from the error code otherwise
func (h *BaseHandler) RenderResult(c *gin.Context, result shared.Result) {
	h.render(c, result, http.StatusOK)
}

// RenderCreated writes a service result with 201 on success
func (h *BaseHandler) RenderCreated(c *gin.Context, result shared.Result) {
	h.render(c, result, http.StatusCreated)
}

func (h *BaseHandler) render(c *gin.Context, result shared.Result, successStatus int) {
	if result.Success {
		response := dto.Response{
			Success: true,
			Message: result.Message,
			Data:    result.Data,
			Meta:    result.Metadata,
		}
		c.JSON(successStatus, response)
		return
	}
	c.JSON(dto.GetHTTPStatus(result.ErrorCode),
		dto.NewErrorResponse(result.ErrorCode, result.Message, result.Errors))
}

// BadRequest writes a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, nil))
}

// InvalidJSON writes a 400 response for body binding failures
func (h *BaseHandler) InvalidJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, err.Error(), nil))
}

// parseID reads and validates the :id path parameter
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseFilter reads common list query parameters into a domain filter
func (h *BaseHandler) parseFilter(c *gin.Context) (domain.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return domain.Filter{}, false
	}

	filter := domain.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, true
}
