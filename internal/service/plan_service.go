// FILE: internal/service/plan_service.go
// Service for the subscription plan catalog and first-run seeding.
package service

import (
	"context"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const planCacheKey = "plans:active"

type IPlanService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	EnsureDefaultPlans(ctx context.Context) (int, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) IPlanService {
	// Plans change rarely; a short TTL keeps the catalog endpoint off the DB
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &planService{
		uowFactory: uowFactory,
		cache:      c,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// DefaultPlans is the seed catalog. Nil price means the cycle is not
// offered; nil credits means unlimited.
func DefaultPlans() []*entity.SubscriptionPlan {
	return []*entity.SubscriptionPlan{
		{
			Id:           uuid.New(),
			Name:         "Free",
			MonthlyPrice: floatPtr(0),
			YearlyPrice:  floatPtr(0),
			Features: []string{
				"Basic editing tools",
				"5 AI credits per month",
				"3 saved projects",
			},
			AiCreditsPerMonth: intPtr(5),
			IsActive:          true,
			CreatedAt:         time.Now(),
		},
		{
			Id:            uuid.New(),
			Name:          "Pro",
			MonthlyPrice:  floatPtr(10),
			YearlyPrice:   floatPtr(96),
			LifetimePrice: floatPtr(99),
			Features: []string{
				"All editing tools",
				"Unlimited AI edits",
				"Unlimited projects",
				"Priority support",
			},
			IsActive:  true,
			CreatedAt: time.Now(),
		},
		{
			Id:           uuid.New(),
			Name:         "Enterprise",
			MonthlyPrice: floatPtr(25),
			YearlyPrice:  floatPtr(240),
			Features: []string{
				"Everything in Pro",
				"Team workspaces",
				"API access",
				"Dedicated support",
			},
			IsActive:  true,
			CreatedAt: time.Now(),
		},
	}
}

func (s *planService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if x, found := s.cache.Get(planCacheKey); found {
		return x.([]*dto.PlanResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx, specification.ActivePlans{})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}

	s.cache.Set(planCacheKey, res, cache.DefaultExpiration)
	return res, nil
}

// EnsureDefaultPlans seeds the catalog when the table is empty.
// Returns the number of plans inserted (0 when already seeded).
func (s *planService) EnsureDefaultPlans(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.SubscriptionRepository().CountPlans(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	seeded := 0
	for _, plan := range DefaultPlans() {
		if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
			return 0, err
		}
		seeded++
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.cache.Delete(planCacheKey)
	return seeded, nil
}
