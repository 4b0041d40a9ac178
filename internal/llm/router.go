package llm

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/omega/animator/internal/biz/provider"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewDefaultFactory, NewRouter)

// Catalog lists provider entries ordered by priority.
type Catalog interface {
	List(ctx context.Context, filter provider.ListFilter) ([]*provider.Config, error)
}

// Router picks a provider from the catalog.
type Router struct {
	catalog Catalog
	factory Factory
	logger  *zap.Logger
}

func NewRouter(catalog provider.Repo, factory Factory, logger *zap.Logger) *Router {
	return &Router{catalog: catalog, factory: factory, logger: logger.Named("llm")}
}

// Resolve returns the highest-priority active provider of kind that has
// credentials.
func (r *Router) Resolve(ctx context.Context, kind provider.Kind) (Provider, error) {
	configs, err := r.catalog.List(ctx, provider.ListFilter{Kind: mo.Some(kind), Active: mo.Some(true)})
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return r.first(kind.String(), configs)
}

// Preferred returns the first usable active provider of any kind.
func (r *Router) Preferred(ctx context.Context) (Provider, error) {
	configs, err := r.catalog.List(ctx, provider.ListFilter{Active: mo.Some(true)})
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return r.first("any", configs)
}

func (r *Router) first(label string, configs []*provider.Config) (Provider, error) {
	usable := lo.Filter(configs, func(c *provider.Config, _ int) bool {
		return c.HasCredentials()
	})
	if len(usable) == 0 {
		if len(configs) > 0 {
			return nil, configError("no %s provider has credentials configured", label)
		}
		return nil, configError("no active %s provider configured", label)
	}
	cfg := usable[0]
	r.logger.Debug("selected provider",
		zap.String("provider", cfg.Name),
		zap.String("kind", cfg.Kind.String()),
		zap.Int("priority", cfg.Priority))
	return r.factory.New(cfg)
}
