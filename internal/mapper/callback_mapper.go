package mapper

import (
	"writinghub-be/internal/entity"
	"writinghub-be/internal/model"
)

type CallbackMapper struct{}

func NewCallbackMapper() *CallbackMapper {
	return &CallbackMapper{}
}

func (m *CallbackMapper) ToEntity(c *model.Callback) *entity.Callback {
	if c == nil {
		return nil
	}
	return &entity.Callback{
		Id:            c.Id,
		Name:          c.Name,
		Phone:         c.Phone,
		PreferredTime: c.PreferredTime,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *CallbackMapper) ToModel(c *entity.Callback) *model.Callback {
	if c == nil {
		return nil
	}
	return &model.Callback{
		Id:            c.Id,
		Name:          c.Name,
		Phone:         c.Phone,
		PreferredTime: c.PreferredTime,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}
