package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/llm"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domainError.ErrScriptNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("wrap: %w", domainError.ErrProviderNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domainError.ErrScriptBusy, http.StatusConflict, "CONFLICT"},
		{domainError.NewBusinessError("INVALID_PROMPT", "prompt is required", domainError.ErrInvalidInput), http.StatusBadRequest, "INVALID_PROMPT"},
		{fmt.Errorf("%w: x", llm.ErrProviderConfig), http.StatusBadRequest, "PROVIDER_NOT_CONFIGURED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, body := Classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, body.Code, tt.err.Error())
	}
}

func TestErrorHandlingMiddlewareRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware(zap.NewNop()))
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(domainError.ErrScriptNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
