package attemptrepo

import (
	"time"

	domain "github.com/omega/animator/internal/biz/attempt"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
)

type AttemptPo struct {
	commonrepo.Mode
	ScriptID       string            `gorm:"column:script_id;size:36;not null;index"`
	Number         int               `gorm:"column:attempt_number;not null"`
	OriginalScript string            `gorm:"column:original_script;type:text"`
	ModifiedScript string            `gorm:"column:modified_script;type:text"`
	SceneClass     string            `gorm:"column:scene_class;size:100"`
	Successful     bool              `gorm:"column:is_successful;default:false"`
	Output         string            `gorm:"column:output;type:text"`
	Error          string            `gorm:"column:error;type:text"`
	OutputPath     string            `gorm:"column:output_path;size:255"`
	Repair         domain.RepairKind `gorm:"column:repair;size:30"`
	StartedAt      time.Time         `gorm:"column:started_at;not null"`
	CompletedAt    time.Time         `gorm:"column:completed_at;not null"`
}

func (AttemptPo) TableName() string {
	return "executions"
}
