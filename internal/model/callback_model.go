package model

import (
	"time"

	"github.com/google/uuid"
)

type Callback struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Phone         string    `gorm:"type:varchar(50);not null"`
	PreferredTime string    `gorm:"type:varchar(100)"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Callback) TableName() string {
	return "callbacks"
}
