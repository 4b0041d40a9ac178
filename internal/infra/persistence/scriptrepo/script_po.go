package scriptrepo

import (
	domain "github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
)

type ScriptPo struct {
	commonrepo.UUIDMode
	Prompt       string        `gorm:"column:prompt;type:text;not null"`
	Content      string        `gorm:"column:content;type:text;not null"`
	Provider     string        `gorm:"column:provider;size:50;index"`
	SceneClass   string        `gorm:"column:scene_class;size:100"`
	Status       domain.Status `gorm:"column:status;size:20;not null;index"`
	OutputPath   string        `gorm:"column:output_path;size:255"`
	OutputURL    string        `gorm:"column:output_url;size:512"`
	ErrorMessage string        `gorm:"column:error_message;type:text"`
	Attempts     int           `gorm:"column:attempts;default:0"`
}

func (ScriptPo) TableName() string {
	return "scripts"
}
