package contract

import (
	"context"
	"time"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	// UpdateFields applies a partial column update without touching the rest
	// of the row.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	// Touch bumps updated_at so recency-based admin sorting reflects the
	// latest appended message.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
