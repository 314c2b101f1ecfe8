package implementation

import (
	"context"

	"photopro-be/internal/entity"
	"photopro-be/internal/mapper"
	"photopro-be/internal/model"
	"photopro-be/internal/repository/contract"
	"photopro-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UsageRepositoryImpl) Create(ctx context.Context, usage *entity.AiUsage) error {
	m := r.mapper.ToModel(usage)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*usage = *r.mapper.ToEntity(m)
	return nil
}

func (r *UsageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiUsage, error) {
	var models []*model.AiUsage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AiUsage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UsageRepositoryImpl) TotalCredits(ctx context.Context, userId uuid.UUID, month, year int) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AiUsage{}).
		Where("user_id = ? AND month = ? AND year = ?", userId, month, year).
		Select("COALESCE(SUM(credits_used), 0)").
		Scan(&total).Error
	return int(total), err
}
