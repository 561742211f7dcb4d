package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitorId    string    `gorm:"type:varchar(100);not null;index"`
	VisitorName  string    `gorm:"type:varchar(100)"`
	VisitorEmail string    `gorm:"type:varchar(255)"`
	VisitorPhone string    `gorm:"type:varchar(50)"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
