// FILE: internal/service/usage_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// freeTierCredits is the fallback quota when no Free plan row exists yet.
const freeTierCredits = 5

// QuotaExceededError reports how far over the monthly credit quota the
// request would have gone. Controllers map it to a 403.
type QuotaExceededError struct {
	CurrentUsage int
	Limit        int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly AI credit quota exceeded (%d/%d used)", e.CurrentUsage, e.Limit)
}

type IUsageService interface {
	RecordUsage(ctx context.Context, userId uuid.UUID, req *dto.RecordUsageRequest) (*dto.UsageResponse, error)
	GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageSummaryResponse, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory) IUsageService {
	return &usageService{uowFactory: uowFactory}
}

// resolveQuota returns the user's monthly credit quota (nil = unlimited)
// and the subscription id when one grants access right now.
func (s *usageService) resolveQuota(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*int, *uuid.UUID, error) {
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, nil, err
	}

	if sub != nil && sub.IsCurrent(time.Now()) {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
		if err != nil {
			return nil, nil, err
		}
		if plan != nil {
			return plan.AiCreditsPerMonth, &sub.Id, nil
		}
	}

	// No current subscription falls back to the Free tier quota
	freePlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.Filter("name", "Free"))
	if err != nil {
		return nil, nil, err
	}
	if freePlan != nil && freePlan.AiCreditsPerMonth != nil {
		return freePlan.AiCreditsPerMonth, nil, nil
	}

	quota := freeTierCredits
	return &quota, nil, nil
}

func (s *usageService) RecordUsage(ctx context.Context, userId uuid.UUID, req *dto.RecordUsageRequest) (*dto.UsageResponse, error) {
	credits := req.CreditsUsed
	if credits <= 0 {
		credits = 1
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	quota, subId, err := s.resolveQuota(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	// Nil quota = unlimited, never gates
	if quota != nil {
		total, err := uow.UsageRepository().TotalCredits(ctx, userId, month, year)
		if err != nil {
			return nil, err
		}
		if total+credits > *quota {
			return nil, &QuotaExceededError{CurrentUsage: total, Limit: *quota}
		}
	}

	usage := &entity.AiUsage{
		Id:             uuid.New(),
		UserId:         userId,
		SubscriptionId: subId,
		FeatureType:    req.FeatureType,
		CreditsUsed:    credits,
		Month:          month,
		Year:           year,
		CreatedAt:      now,
	}
	if err := uow.UsageRepository().Create(ctx, usage); err != nil {
		return nil, err
	}

	return &dto.UsageResponse{
		Id:          usage.Id,
		FeatureType: usage.FeatureType,
		CreditsUsed: usage.CreditsUsed,
		Month:       usage.Month,
		Year:        usage.Year,
		CreatedAt:   usage.CreatedAt,
	}, nil
}

func (s *usageService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	quota, _, err := s.resolveQuota(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	records, err := uow.UsageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.InMonth{Month: month, Year: year},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	total := 0
	items := make([]dto.UsageResponse, 0, len(records))
	for _, r := range records {
		total += r.CreditsUsed
		items = append(items, dto.UsageResponse{
			Id:          r.Id,
			FeatureType: r.FeatureType,
			CreditsUsed: r.CreditsUsed,
			Month:       r.Month,
			Year:        r.Year,
			CreatedAt:   r.CreatedAt,
		})
	}

	return &dto.UsageSummaryResponse{
		TotalCredits: total,
		Limit:        quota,
		Records:      items,
	}, nil
}
