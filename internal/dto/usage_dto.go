package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecordUsageRequest struct {
	FeatureType string `json:"featureType" validate:"required,max=100"`
	// Defaults to 1 when omitted
	CreditsUsed int `json:"creditsUsed" validate:"omitempty,min=1"`
}

type UsageResponse struct {
	Id          uuid.UUID `json:"id"`
	FeatureType string    `json:"featureType"`
	CreditsUsed int       `json:"creditsUsed"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UsageSummaryResponse reports the month to date totals alongside the
// plan quota (null limit means unlimited).
type UsageSummaryResponse struct {
	TotalCredits int             `json:"totalCredits"`
	Limit        *int            `json:"limit"`
	Records      []UsageResponse `json:"records"`
}

// QuotaExceededResponse is the 403 payload when a request would cross the
// monthly credit quota.
type QuotaExceededResponse struct {
	CurrentUsage int `json:"currentUsage"`
	Limit        int `json:"limit"`
}
