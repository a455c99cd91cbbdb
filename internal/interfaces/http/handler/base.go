package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/logger"
	"github.com/moldshop/erp/internal/interfaces/http/dto"
	"github.com/moldshop/erp/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created answers a create call. Form posts are redirected to the
// collection they were posted to; API clients get 201 with the resource.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	if isFormSubmission(c) {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError converts service errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code == dto.ErrCodeValidation && domainErr.Field != "" {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(domainErr.Message, requestID, []dto.ValidationDetail{
				{Field: domainErr.Field, Message: domainErr.Message},
			}))
			return
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	logger.FromContext(c.Request.Context()).Error("Unhandled error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// bind decodes the request body or query into req, answering the request
// itself when that fails
func (h *BaseHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// decodeBody fills req from a JSON body, or from a form body through
// convert. The result is validated either way.
func decodeBody[F, R any](h *BaseHandler, c *gin.Context, req *R, convert func(F) (R, error)) bool {
	if !isFormSubmission(c) {
		if err := c.ShouldBindJSON(req); err != nil {
			middleware.HandleValidationError(c, err)
			return false
		}
		return true
	}

	var form F
	if !h.bind(c, &form) {
		return false
	}
	converted, err := convert(form)
	if err != nil {
		h.HandleError(c, err)
		return false
	}
	if err := binding.Validator.ValidateStruct(&converted); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	*req = converted
	return true
}

// bindQuery decodes query parameters into req
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// pathID parses the :id path parameter, answering 400 when it is malformed
func (h *BaseHandler) pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+entity+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func isFormSubmission(c *gin.Context) bool {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	}
	return false
}
