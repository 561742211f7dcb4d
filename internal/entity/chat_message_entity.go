package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SenderVisitor = "visitor"
	SenderAdmin   = "admin"
)

const (
	MessageKindText  = "text"
	MessageKindFile  = "file"
	MessageKindImage = "image"
	MessageKindVoice = "voice"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Sender        string
	Body          string
	Kind          string
	FileUrl       string
	FileName      string
	FileDuration  float64
	CreatedAt     time.Time
}

// HasContent reports whether the message carries either text or an
// attachment. Messages with neither must never be persisted.
func (m *ChatMessage) HasContent() bool {
	return m.Body != "" || m.FileUrl != ""
}
