package mapper

import (
	"encoding/json"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(n.Metadata) > 0 {
		// Ignore malformed metadata, the row is still usable without it.
		_ = json.Unmarshal(n.Metadata, &metadata)
	}

	return &entity.Notification{
		Id:        n.Id,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Metadata:  metadata,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var metadata datatypes.JSON
	if n.Metadata != nil {
		if raw, err := json.Marshal(n.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Notification{
		Id:        n.Id,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Metadata:  metadata,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(models []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(models))
	for i, n := range models {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
