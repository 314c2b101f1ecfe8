package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MonthlyPrice  *float64  `json:"monthlyPrice"`
	YearlyPrice   *float64  `json:"yearlyPrice"`
	LifetimePrice *float64  `json:"lifetimePrice"`
	Features      []string  `json:"features"`
	// null means unlimited
	AiCreditsPerMonth *int `json:"aiCreditsPerMonth"`
	IsActive          bool `json:"isActive"`
}

type SubscriptionResponse struct {
	Id                 uuid.UUID     `json:"id"`
	Status             string        `json:"status"`
	BillingCycle       string        `json:"billingCycle"`
	CurrentPeriodStart time.Time     `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time     `json:"currentPeriodEnd"`
	CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`
	Plan               *PlanResponse `json:"plan,omitempty"`
}
