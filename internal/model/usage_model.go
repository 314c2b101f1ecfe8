package model

import (
	"time"

	"github.com/google/uuid"
)

type AiUsage struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index:idx_ai_usage_bucket"`
	SubscriptionId *uuid.UUID `gorm:"type:uuid"`
	FeatureType    string     `gorm:"type:varchar(100);not null"`
	CreditsUsed    int        `gorm:"not null;default:1"`
	Month          int        `gorm:"not null;index:idx_ai_usage_bucket"`
	Year           int        `gorm:"not null;index:idx_ai_usage_bucket"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (AiUsage) TableName() string {
	return "ai_usage"
}
