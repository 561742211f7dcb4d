package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CallbackStatusPending   = "pending"
	CallbackStatusContacted = "contacted"
)

type Callback struct {
	Id            uuid.UUID
	Name          string
	Phone         string
	PreferredTime string
	Status        string
	CreatedAt     time.Time
}
