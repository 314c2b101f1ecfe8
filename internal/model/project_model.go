package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserProject struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	ThumbnailURL *string        `gorm:"type:text"`
	ProjectData  datatypes.JSON `gorm:""`
	LastModified time.Time      `gorm:"index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (UserProject) TableName() string {
	return "user_projects"
}
