package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/llm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandlingMiddleware renders c.Errors and recovers panics.
func ErrorHandlingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    "INTERNAL_ERROR",
					Message: "An internal error occurred",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := Classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request error",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
		} else {
			logger.Info("request rejected",
				zap.Int("status", status),
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
		}
		c.JSON(status, body)
	}
}

// Classify maps an error to a status code and response body.
func Classify(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Details: err.Error()}
	var business domainError.DomainError
	if errors.As(err, &business) {
		resp.Code = business.Code()
		resp.Message = business.Message()
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainError.ErrScriptNotFound),
		errors.Is(err, domainError.ErrProviderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		resp = fill(resp, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domainError.ErrScriptBusy),
		errors.Is(err, domainError.ErrProviderExists),
		errors.Is(err, domainError.ErrInvalidStatusTransition),
		errors.Is(err, gorm.ErrDuplicatedKey):
		status = http.StatusConflict
		resp = fill(resp, "CONFLICT", "Resource is in a conflicting state")
	case errors.Is(err, domainError.ErrInvalidInput),
		errors.Is(err, domainError.ErrUnknownProvider):
		status = http.StatusBadRequest
		resp = fill(resp, "INVALID_INPUT", "Invalid request")
	case errors.Is(err, llm.ErrProviderConfig):
		status = http.StatusBadRequest
		resp = fill(resp, "PROVIDER_NOT_CONFIGURED", "AI provider is not configured")
	default:
		resp = fill(resp, "INTERNAL_ERROR", "An error occurred while processing your request")
	}
	return status, resp
}

func fill(resp ErrorResponse, code, message string) ErrorResponse {
	if resp.Code == "" {
		resp.Code = code
	}
	if resp.Message == "" {
		resp.Message = message
	}
	return resp
}
