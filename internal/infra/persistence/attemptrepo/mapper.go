package attemptrepo

import (
	domain "github.com/omega/animator/internal/biz/attempt"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
)

func (po *AttemptPo) ToDomain() *domain.Attempt {
	return &domain.Attempt{
		ID:             po.ID,
		CreatedAt:      po.CreatedAt,
		ScriptID:       po.ScriptID,
		Number:         po.Number,
		OriginalScript: po.OriginalScript,
		ModifiedScript: po.ModifiedScript,
		SceneClass:     po.SceneClass,
		Successful:     po.Successful,
		Output:         po.Output,
		Error:          po.Error,
		OutputPath:     po.OutputPath,
		Repair:         po.Repair,
		StartedAt:      po.StartedAt,
		CompletedAt:    po.CompletedAt,
	}
}

func (po *AttemptPo) FromDomain(a *domain.Attempt) *AttemptPo {
	return &AttemptPo{
		Mode: commonrepo.Mode{
			ID:        a.ID,
			CreatedAt: a.CreatedAt,
		},
		ScriptID:       a.ScriptID,
		Number:         a.Number,
		OriginalScript: a.OriginalScript,
		ModifiedScript: a.ModifiedScript,
		SceneClass:     a.SceneClass,
		Successful:     a.Successful,
		Output:         a.Output,
		Error:          a.Error,
		OutputPath:     a.OutputPath,
		Repair:         a.Repair,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
	}
}
