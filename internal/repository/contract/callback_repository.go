package contract

import (
	"context"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CallbackRepository interface {
	Create(ctx context.Context, callback *entity.Callback) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Callback, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Callback, error)
}
