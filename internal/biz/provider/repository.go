package provider

import (
	"context"

	"github.com/samber/mo"
)

type Repo interface {
	Create(ctx context.Context, cfg *Config) error
	GetByID(ctx context.Context, id uint64) (*Config, error)
	GetByName(ctx context.Context, name string) (*Config, error)
	Save(ctx context.Context, cfg *Config) error
	Delete(ctx context.Context, id uint64) error

	// List returns entries ordered by priority, then id.
	List(ctx context.Context, filter ListFilter) ([]*Config, error)
}

type ListFilter struct {
	Kind   mo.Option[Kind]
	Active mo.Option[bool]
}
