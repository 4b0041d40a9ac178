package scriptrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/wire"
	domain "github.com/omega/animator/internal/biz/script"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var Provider = wire.NewSet(NewRepositoryImpl)

type RepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &RepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *RepositoryImpl) Create(ctx context.Context, s *domain.Script) error {
	po := new(ScriptPo).FromDomain(s)
	if err := r.Db(ctx).Create(po).Error; err != nil {
		return domainError.NewBusinessError("SCRIPT_CREATE_FAILED", "failed to create script", err)
	}
	s.CreatedAt = po.CreatedAt
	s.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id string) (*domain.Script, error) {
	var po ScriptPo
	if err := r.Db(ctx).Where("id = ?", id).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainError.ErrScriptNotFound
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *RepositoryImpl) Save(ctx context.Context, s *domain.Script) error {
	po := new(ScriptPo).FromDomain(s)
	if err := r.Db(ctx).Save(po).Error; err != nil {
		return domainError.NewBusinessError("SCRIPT_UPDATE_FAILED", "failed to save script", err)
	}
	s.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *RepositoryImpl) Update(ctx context.Context, id string, patch *domain.ScriptPatch) error {
	values := patchToMap(patch)
	if len(values) == 0 {
		return nil
	}
	result := r.Db(ctx).Model(&ScriptPo{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return domainError.NewBusinessError("SCRIPT_UPDATE_FAILED", "failed to update script", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainError.ErrScriptNotFound
	}
	return nil
}

func (r *RepositoryImpl) UpdateIf(ctx context.Context, id string, guard domain.Guard, patch *domain.ScriptPatch) (bool, error) {
	values := patchToMap(patch)
	if len(values) == 0 {
		return false, nil
	}
	db := r.Db(ctx).Model(&ScriptPo{}).Where("id = ?", id)
	if len(guard.From) > 0 {
		db = db.Where("status IN ?", guard.From)
	}
	if before, ok := guard.UpdatedBefore.Get(); ok {
		db = db.Where("updated_at < ?", before)
	}
	result := db.Updates(values)
	if result.Error != nil {
		return false, domainError.NewBusinessError("SCRIPT_UPDATE_FAILED", "failed to update script", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter domain.ListFilter, offset, limit int) ([]*domain.Script, int64, error) {
	db := r.Db(ctx).Model(&ScriptPo{})
	if filter.Status.IsPresent() {
		db = db.Where("status = ?", filter.Status.MustGet())
	}
	if filter.Provider.IsPresent() {
		db = db.Where("provider = ?", filter.Provider.MustGet())
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var pos []ScriptPo
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&pos).Error; err != nil {
		return nil, 0, err
	}
	return lo.Map(pos, func(po ScriptPo, _ int) *domain.Script {
		return po.ToDomain()
	}), count, nil
}

func (r *RepositoryImpl) ListStale(ctx context.Context, before time.Time) ([]*domain.Script, error) {
	var pos []ScriptPo
	err := r.Db(ctx).
		Where("status IN ?", domain.ActiveStatuses).
		Where("updated_at < ?", before).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po ScriptPo, _ int) *domain.Script {
		return po.ToDomain()
	}), nil
}
