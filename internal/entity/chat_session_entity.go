package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusActive = "active"
	SessionStatusClosed = "closed"
)

type ChatSession struct {
	Id           uuid.UUID
	VisitorId    string
	VisitorName  string
	VisitorEmail string
	VisitorPhone string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
