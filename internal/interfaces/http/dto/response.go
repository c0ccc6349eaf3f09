package dto

// Response is the standard API envelope. It mirrors the application
// layer's result shape so handlers translate one to one.
type Response struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string, errs []string) Response {
	return Response{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Errors:    errs,
	}
}

// ListRequest represents common list/pagination query parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// IDRequest represents a request with an id path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
