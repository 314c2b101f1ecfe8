// FILE: internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetCurrentUser(ctx context.Context, userId uuid.UUID) (*dto.CurrentUserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func toPlanResponse(plan *entity.SubscriptionPlan) *dto.PlanResponse {
	if plan == nil {
		return nil
	}
	return &dto.PlanResponse{
		Id:                plan.Id,
		Name:              plan.Name,
		MonthlyPrice:      plan.MonthlyPrice,
		YearlyPrice:       plan.YearlyPrice,
		LifetimePrice:     plan.LifetimePrice,
		Features:          plan.Features,
		AiCreditsPerMonth: plan.AiCreditsPerMonth,
		IsActive:          plan.IsActive,
	}
}

func toSubscriptionResponse(sub *entity.UserSubscription, plan *entity.SubscriptionPlan) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		Id:                 sub.Id,
		Status:             string(sub.Status),
		BillingCycle:       string(sub.BillingCycle),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelledAt:        sub.CancelledAt,
		Plan:               toPlanResponse(plan),
	}
}

func (s *userService) GetCurrentUser(ctx context.Context, userId uuid.UUID) (*dto.CurrentUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// Subscription is optional; free users have no row
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	var plan *entity.SubscriptionPlan
	if sub != nil {
		plan, err = uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	total, err := uow.UsageRepository().TotalCredits(ctx, userId, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}

	return &dto.CurrentUserResponse{
		User:             toUserResponse(user),
		Subscription:     toSubscriptionResponse(sub, plan),
		AiUsageThisMonth: total,
	}, nil
}
