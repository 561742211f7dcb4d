package mapper

import (
	"time"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:           s.Id,
		VisitorId:    s.VisitorId,
		VisitorName:  s.VisitorName,
		VisitorEmail: s.VisitorEmail,
		VisitorPhone: s.VisitorPhone,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:           s.Id,
		VisitorId:    s.VisitorId,
		VisitorName:  s.VisitorName,
		VisitorEmail: s.VisitorEmail,
		VisitorPhone: s.VisitorPhone,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Sender:        msg.Sender,
		Body:          msg.Body,
		Kind:          msg.Kind,
		FileUrl:       msg.FileUrl,
		FileName:      msg.FileName,
		FileDuration:  msg.FileDuration,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Sender:        msg.Sender,
		Body:          msg.Body,
		Kind:          msg.Kind,
		FileUrl:       msg.FileUrl,
		FileName:      msg.FileName,
		FileDuration:  msg.FileDuration,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
