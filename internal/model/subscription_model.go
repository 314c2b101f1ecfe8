package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"type:varchar(255);not null"`
	MonthlyPrice  *float64       `gorm:"type:decimal(10,2)"`
	YearlyPrice   *float64       `gorm:"type:decimal(10,2)"`
	LifetimePrice *float64       `gorm:"type:decimal(10,2)"`
	Features      datatypes.JSON `gorm:"not null"`
	// NULL = unlimited
	AiCreditsPerMonth *int      `gorm:""`
	IsActive          bool      `gorm:"default:true"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Unique index: exactly one subscription row per user, updated in place
	UserId                  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	PlanId                  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status                  string     `gorm:"type:varchar(50);not null"`
	BillingCycle            string     `gorm:"type:varchar(50);not null"`
	AirwallexCustomerId     *string    `gorm:"type:varchar(255)"`
	AirwallexSubscriptionId *string    `gorm:"type:varchar(255)"`
	CurrentPeriodStart      time.Time  `gorm:"not null"`
	CurrentPeriodEnd        time.Time  `gorm:"not null"`
	CancelledAt             *time.Time `gorm:""`
	CreatedAt               time.Time  `gorm:"autoCreateTime"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type PaymentTransaction struct {
	Id                       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                   uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId                   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubscriptionId           *uuid.UUID `gorm:"type:uuid;index"`
	AirwallexPaymentIntentId string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Amount                   float64    `gorm:"type:decimal(10,2);not null"`
	Currency                 string     `gorm:"type:varchar(10);not null;default:'USD'"`
	Status                   string     `gorm:"type:varchar(50);not null"`
	PaymentMethod            *string    `gorm:"type:varchar(100)"`
	BillingCycle             string     `gorm:"type:varchar(50);not null"`
	CreatedAt                time.Time  `gorm:"autoCreateTime"`
	UpdatedAt                time.Time  `gorm:"autoUpdateTime"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
