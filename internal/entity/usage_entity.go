// FILE: internal/entity/usage_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AiUsage is one AI-feature invocation. Month/year columns partition usage
// into billing buckets; totals reset naturally at rollover because new rows
// land in a fresh bucket.
type AiUsage struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	SubscriptionId *uuid.UUID
	FeatureType    string
	CreditsUsed    int
	Month          int
	Year           int
	CreatedAt      time.Time
}
