package providerrepo

import (
	domain "github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
)

func (po *ProviderPo) ToDomain() *domain.Config {
	return &domain.Config{
		ID:         po.ID,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
		Name:       po.Name,
		Kind:       po.Kind,
		APIKey:     po.APIKey,
		Endpoint:   po.Endpoint,
		Deployment: po.Deployment,
		Model:      po.Model,
		APIVersion: po.APIVersion,
		Options:    po.Options,
		Active:     po.Active,
		Priority:   po.Priority,
	}
}

func (po *ProviderPo) FromDomain(c *domain.Config) *ProviderPo {
	return &ProviderPo{
		Mode: commonrepo.Mode{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		Name:       c.Name,
		Kind:       c.Kind,
		APIKey:     c.APIKey,
		Endpoint:   c.Endpoint,
		Deployment: c.Deployment,
		Model:      c.Model,
		APIVersion: c.APIVersion,
		Options:    c.Options,
		Active:     c.Active,
		Priority:   c.Priority,
	}
}
