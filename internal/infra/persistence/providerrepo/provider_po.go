package providerrepo

import (
	domain "github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

type ProviderPo struct {
	commonrepo.Mode
	Name       string            `gorm:"column:name;size:100;not null;uniqueIndex"`
	Kind       domain.Kind       `gorm:"column:provider_type;size:20;not null;index"`
	APIKey     string            `gorm:"column:api_key;size:255"`
	Endpoint   string            `gorm:"column:endpoint;size:255"`
	Deployment string            `gorm:"column:deployment;size:100"`
	Model      string            `gorm:"column:model_name;size:100"`
	APIVersion string            `gorm:"column:api_version;size:50"`
	Options    datatypes.JSONMap `gorm:"column:options;type:json"`
	Active     bool              `gorm:"column:is_active;not null"`
	Priority   int               `gorm:"column:priority;not null;index"`
}

func (ProviderPo) TableName() string {
	return "ai_providers"
}
