package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCallbackRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=50"`
	PreferredTime string `json:"preferredTime" validate:"max=100"`
}

type CallbackDTO struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type UpdateCallbackRequest struct {
	Status string `json:"status" validate:"required,oneof=pending contacted"`
}
