package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	FirstName         *string   `gorm:"type:varchar(255)"`
	LastName          *string   `gorm:"type:varchar(255)"`
	ProfileImageURL   *string   `gorm:"type:text"`
	BillingCustomerId *string   `gorm:"type:varchar(255)"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
