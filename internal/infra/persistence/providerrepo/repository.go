package providerrepo

import (
	"context"
	"errors"

	"github.com/google/wire"
	domain "github.com/omega/animator/internal/biz/provider"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var Provider = wire.NewSet(NewRepositoryImpl)

type RepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &RepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *RepositoryImpl) Create(ctx context.Context, cfg *domain.Config) error {
	po := new(ProviderPo).FromDomain(cfg)
	if err := r.Db(ctx).Create(po).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainError.ErrProviderExists
		}
		return domainError.NewBusinessError("PROVIDER_CREATE_FAILED", "failed to create provider", err)
	}
	cfg.ID = po.ID
	cfg.CreatedAt = po.CreatedAt
	cfg.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *RepositoryImpl) GetByID(ctx context.Context, id uint64) (*domain.Config, error) {
	var po ProviderPo
	if err := r.Db(ctx).First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainError.ErrProviderNotFound
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *RepositoryImpl) GetByName(ctx context.Context, name string) (*domain.Config, error) {
	var po ProviderPo
	if err := r.Db(ctx).Where("name = ?", name).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainError.ErrProviderNotFound
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *RepositoryImpl) Save(ctx context.Context, cfg *domain.Config) error {
	po := new(ProviderPo).FromDomain(cfg)
	if err := r.Db(ctx).Save(po).Error; err != nil {
		return domainError.NewBusinessError("PROVIDER_UPDATE_FAILED", "failed to save provider", err)
	}
	cfg.ID = po.ID
	cfg.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uint64) error {
	result := r.Db(ctx).Delete(&ProviderPo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainError.ErrProviderNotFound
	}
	return nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Config, error) {
	db := r.Db(ctx).Model(&ProviderPo{})
	if filter.Kind.IsPresent() {
		db = db.Where("provider_type = ?", filter.Kind.MustGet())
	}
	if filter.Active.IsPresent() {
		db = db.Where("is_active = ?", filter.Active.MustGet())
	}

	var pos []ProviderPo
	err := db.Order(clause.OrderByColumn{Column: clause.Column{Name: "priority"}}).
		Order("id ASC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po ProviderPo, _ int) *domain.Config {
		return po.ToDomain()
	}), nil
}
