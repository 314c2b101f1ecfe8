package contract

import (
	"context"

	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UsageRepository interface {
	Create(ctx context.Context, usage *entity.AiUsage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiUsage, error)

	// TotalCredits sums credits_used for one user's month/year bucket.
	TotalCredits(ctx context.Context, userId uuid.UUID, month, year int) (int, error)
}
