package implementation

import (
	"context"
	"errors"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/mapper"
	"writinghub-be/internal/model"
	"writinghub-be/internal/repository/contract"
	"writinghub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CallbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CallbackMapper
}

func NewCallbackRepository(db *gorm.DB) contract.CallbackRepository {
	return &CallbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewCallbackMapper(),
	}
}

func (r *CallbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CallbackRepositoryImpl) Create(ctx context.Context, callback *entity.Callback) error {
	m := r.mapper.ToModel(callback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*callback = *r.mapper.ToEntity(m)
	return nil
}

func (r *CallbackRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Callback{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *CallbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Callback, error) {
	var m model.Callback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CallbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Callback, error) {
	var models []*model.Callback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Callback, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
