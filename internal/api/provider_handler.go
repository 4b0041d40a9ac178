package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/service"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cast"
)

// ProviderHandler serves the provider catalog endpoints.
type ProviderHandler struct {
	providers service.IProviderService
}

func NewProviderHandler(providers service.IProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// @GET(api/v1/providers)
func (h *ProviderHandler) List(c *gin.Context) {
	filter := provider.ListFilter{}
	if kind := c.Query("kind"); kind != "" {
		k, err := provider.ParseKind(kind)
		if err != nil {
			_ = c.Error(err)
			return
		}
		filter.Kind = mo.Some(k)
	}
	if active := c.Query("active"); active != "" {
		filter.Active = mo.Some(cast.ToBool(active))
	}

	items, err := h.providers.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(items, func(p *provider.Config, _ int) ProviderResp { return toProviderResp(p) }))
}

// @POST(api/v1/providers)
func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderReq
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := req.toDomain()
	if err != nil {
		_ = c.Error(err)
		return
	}
	created, err := h.providers.Create(c.Request.Context(), cfg)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toProviderResp(created))
}

// @PUT(api/v1/providers/{id})
func (h *ProviderHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateProviderReq
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.providers.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toProviderResp(updated))
}

// @DELETE(api/v1/providers/{id})
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.providers.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
