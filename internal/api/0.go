package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/spf13/cast"
)

var Provider = wire.NewSet(
	NewScriptHandler,
	NewProviderHandler,
	NewCommonHandler,
	NewMediaHandler,
	NewServer,
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func bindJSON(c *gin.Context, val any) bool {
	if err := c.ShouldBindJSON(val); err != nil {
		_ = c.Error(domainError.NewBusinessError("INVALID_BODY", "invalid request body", errors.Join(domainError.ErrInvalidInput, err)))
		return false
	}
	return true
}

func respond(c *gin.Context, status int, data any, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(status, data)
}

// pageParams reads offset and limit from the query string, clamping bad
// values instead of rejecting them.
func pageParams(c *gin.Context) (int, int) {
	offset := cast.ToInt(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	limit := cast.ToInt(c.DefaultQuery("limit", cast.ToString(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := cast.ToUint64E(c.Param("id"))
	if err != nil || id == 0 {
		_ = c.Error(domainError.NewBusinessError("INVALID_ID", "invalid id", domainError.ErrInvalidInput))
		return 0, false
	}
	return id, true
}
