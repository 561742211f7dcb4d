package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId    string  `json:"sessionId"`
	VisitorId    string  `json:"visitorId"`
	VisitorName  string  `json:"visitorName"`
	VisitorEmail string  `json:"visitorEmail"`
	VisitorPhone string  `json:"visitorPhone"`
	Message      string  `json:"message"`
	Sender       string  `json:"sender" validate:"required,oneof=visitor admin"`
	FileUrl      string  `json:"fileUrl"`
	FileName     string  `json:"fileName"`
	FileDuration float64 `json:"fileDuration"`
	TempId       string  `json:"tempId"`
}

type ChatSessionDTO struct {
	Id           uuid.UUID  `json:"id"`
	VisitorId    string     `json:"visitorId"`
	VisitorName  string     `json:"visitorName,omitempty"`
	VisitorEmail string     `json:"visitorEmail,omitempty"`
	VisitorPhone string     `json:"visitorPhone,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type ChatMessageDTO struct {
	Id           uuid.UUID `json:"id"`
	SessionId    uuid.UUID `json:"sessionId"`
	Sender       string    `json:"sender"`
	Message      string    `json:"message"`
	Kind         string    `json:"kind"`
	FileUrl      string    `json:"fileUrl,omitempty"`
	FileName     string    `json:"fileName,omitempty"`
	FileDuration float64   `json:"fileDuration,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SendChatResponse echoes the client's tempId so the widget can reconcile
// its optimistic copy with the persisted row.
type SendChatResponse struct {
	Success bool            `json:"success"`
	Session *ChatSessionDTO `json:"session"`
	Message *ChatMessageDTO `json:"message"`
	TempId  string          `json:"tempId,omitempty"`
}

// PollMessagesResponse carries the next cursor: clients must persist
// Timestamp even on empty polls so the scan window never grows.
type PollMessagesResponse struct {
	SessionId uuid.UUID         `json:"sessionId"`
	Messages  []*ChatMessageDTO `json:"messages"`
	Timestamp time.Time         `json:"timestamp"`
}

type SessionWithMessages struct {
	ChatSessionDTO
	Messages []*ChatMessageDTO `json:"messages"`
}

type UpdateSessionRequest struct {
	VisitorName  *string `json:"visitorName"`
	VisitorEmail *string `json:"visitorEmail"`
	VisitorPhone *string `json:"visitorPhone"`
	Status       *string `json:"status"`
}

type SetTypingRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	Sender    string `json:"sender" validate:"required,oneof=visitor admin"`
	IsTyping  bool   `json:"isTyping"`
}

type TypingStatusResponse struct {
	IsTyping bool   `json:"isTyping"`
	Typer    string `json:"typer,omitempty"`
}
