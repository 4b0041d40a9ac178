package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/service"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ScriptHandler serves the script endpoints.
type ScriptHandler struct {
	scripts service.IScriptService
}

func NewScriptHandler(scripts service.IScriptService) *ScriptHandler {
	return &ScriptHandler{scripts: scripts}
}

// Generate creates a script and optionally executes it.
// @POST(api/v1/scripts/generate)
func (h *ScriptHandler) Generate(c *gin.Context) {
	var req GenerateScriptReq
	if !bindJSON(c, &req) {
		return
	}
	sc, err := h.scripts.Generate(c.Request.Context(), service.GenerateInput{
		Prompt:   req.Prompt,
		Provider: req.Provider,
		Execute:  req.Execute,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toGenerateResp(sc))
}

// List pages through scripts.
// @GET(api/v1/scripts)
func (h *ScriptHandler) List(c *gin.Context) {
	filter := script.ListFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = mo.Some(script.Status(status))
	}
	if p := c.Query("provider"); p != "" {
		filter.Provider = mo.Some(p)
	}
	offset, limit := pageParams(c)

	items, total, err := h.scripts.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ScriptListResp{
		Items:  lo.Map(items, func(s *script.Script, _ int) ScriptResp { return toScriptResp(s) }),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// Get returns one script.
// @GET(api/v1/scripts/{id})
func (h *ScriptHandler) Get(c *gin.Context) {
	sc, err := h.scripts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toScriptResp(sc))
}

// Execute runs a stored script.
// @POST(api/v1/scripts/{id}/execute)
func (h *ScriptHandler) Execute(c *gin.Context) {
	sc, err := h.scripts.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toGenerateResp(sc))
}

// Executions lists the attempt history of a script.
// @GET(api/v1/scripts/{id}/executions)
func (h *ScriptHandler) Executions(c *gin.Context) {
	items, err := h.scripts.Attempts(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, toAttemptResps(items), err)
}
