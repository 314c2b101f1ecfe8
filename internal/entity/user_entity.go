// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id              uuid.UUID
	Username        string
	Email           string
	PasswordHash    string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	// Airwallex billing customer reference (bcus_xxx), set on first checkout
	BillingCustomerId *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
