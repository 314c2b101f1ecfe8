// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type TransactionStatus string
type BillingCycle string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSucceeded TransactionStatus = "succeeded"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"

	BillingCycleMonthly  BillingCycle = "monthly"
	BillingCycleYearly   BillingCycle = "yearly"
	BillingCycleLifetime BillingCycle = "lifetime"
)

// ValidBillingCycle reports whether s is one of monthly/yearly/lifetime.
func ValidBillingCycle(s string) bool {
	switch BillingCycle(s) {
	case BillingCycleMonthly, BillingCycleYearly, BillingCycleLifetime:
		return true
	}
	return false
}

type SubscriptionPlan struct {
	Id   uuid.UUID
	Name string
	// Nil price = cycle not offered for this plan
	MonthlyPrice  *float64
	YearlyPrice   *float64
	LifetimePrice *float64
	Features      []string
	// Nil = unlimited
	AiCreditsPerMonth *int
	IsActive          bool
	CreatedAt         time.Time
}

// PriceFor resolves the charge amount for a billing cycle.
// Returns 0 when the cycle is not offered.
func (p *SubscriptionPlan) PriceFor(cycle BillingCycle) float64 {
	var price *float64
	switch cycle {
	case BillingCycleMonthly:
		price = p.MonthlyPrice
	case BillingCycleYearly:
		price = p.YearlyPrice
	case BillingCycleLifetime:
		price = p.LifetimePrice
	}
	if price == nil {
		return 0
	}
	return *price
}

type UserSubscription struct {
	Id     uuid.UUID
	UserId uuid.UUID
	PlanId uuid.UUID
	Status SubscriptionStatus
	// One of monthly/yearly/lifetime; drives period arithmetic
	BillingCycle            BillingCycle
	AirwallexCustomerId     *string
	AirwallexSubscriptionId *string
	CurrentPeriodStart      time.Time
	CurrentPeriodEnd        time.Time
	CancelledAt             *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsCurrent reports whether the subscription grants paid access at t.
// Cancelled subscriptions retain access until the end of the paid period.
func (s *UserSubscription) IsCurrent(t time.Time) bool {
	switch s.Status {
	case SubscriptionStatusActive:
		return s.CurrentPeriodEnd.After(t)
	case SubscriptionStatusCancelled:
		return s.CurrentPeriodEnd.After(t)
	}
	return false
}

type PaymentTransaction struct {
	Id     uuid.UUID
	UserId uuid.UUID
	// Carried from checkout so the webhook never re-derives the plan
	PlanId                   uuid.UUID
	SubscriptionId           *uuid.UUID
	AirwallexPaymentIntentId string
	Amount                   float64
	Currency                 string
	Status                   TransactionStatus
	PaymentMethod            *string
	BillingCycle             BillingCycle
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
