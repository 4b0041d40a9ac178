package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omega/animator/internal/orm"
	"github.com/omega/animator/internal/scheduler"
)

// HealthSource reports the last render executor probe.
type HealthSource interface {
	Last() scheduler.Health
}

type CommonHandler struct {
	storage *orm.Storage
	render  HealthSource
	now     func() time.Time
}

func NewCommonHandler(storage *orm.Storage, render *scheduler.HealthChecker) *CommonHandler {
	h := &CommonHandler{storage: storage, now: time.Now}
	if render != nil {
		h.render = render
	}
	return h
}

// Root returns the service banner.
// @GET(/)
func (h *CommonHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, fmt.Sprintf("Omega animation service. Current time: %s", h.now().Format(time.RFC3339)))
}

// HealthCheck reports database and render executor health.
// @GET(/health)
func (h *CommonHandler) HealthCheck(c *gin.Context) {
	body := gin.H{"time": h.now()}
	status := http.StatusOK

	if err := h.storage.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = err.Error()
	} else {
		body["status"] = "healthy"
		body["database"] = "ok"
	}
	if h.render != nil {
		body["render_executor"] = h.render.Last()
	}
	c.JSON(status, body)
}
