package contract

import (
	"context"

	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	SetBillingCustomerId(ctx context.Context, userId uuid.UUID, customerId string) error
}
