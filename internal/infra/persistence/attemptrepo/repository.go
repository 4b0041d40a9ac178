package attemptrepo

import (
	"context"

	"github.com/google/wire"
	domain "github.com/omega/animator/internal/biz/attempt"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"github.com/samber/lo"
)

var Provider = wire.NewSet(NewRepositoryImpl)

// RepositoryImpl is append-only: attempts are created and read, never updated.
type RepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &RepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *RepositoryImpl) Create(ctx context.Context, a *domain.Attempt) error {
	po := new(AttemptPo).FromDomain(a)
	if err := r.Db(ctx).Create(po).Error; err != nil {
		return domainError.NewBusinessError("ATTEMPT_CREATE_FAILED", "failed to record execution attempt", err)
	}
	a.ID = po.ID
	a.CreatedAt = po.CreatedAt
	return nil
}

func (r *RepositoryImpl) ListByScript(ctx context.Context, scriptID string) ([]*domain.Attempt, error) {
	var pos []AttemptPo
	if err := r.Db(ctx).Where("script_id = ?", scriptID).Order("id ASC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po AttemptPo, _ int) *domain.Attempt {
		return po.ToDomain()
	}), nil
}

func (r *RepositoryImpl) CountByScript(ctx context.Context, scriptID string) (int64, error) {
	var count int64
	err := r.Db(ctx).Model(&AttemptPo{}).Where("script_id = ?", scriptID).Count(&count).Error
	return count, err
}
