package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_session_created,priority:1"`
	Sender        string    `gorm:"type:varchar(10);not null"`
	Body          string    `gorm:"type:text"`
	Kind          string    `gorm:"type:varchar(10);not null;default:'text'"`
	FileUrl       string    `gorm:"type:text"`
	FileName      string    `gorm:"type:varchar(255)"`
	FileDuration  float64
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_chat_messages_session_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
