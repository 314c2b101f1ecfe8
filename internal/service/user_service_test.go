package service

import (
	"context"
	"testing"
	"time"

	"photopro-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser_FreeUser(t *testing.T) {
	state := newFakeState()
	userId := uuid.New()
	state.users[userId] = &entity.User{Id: userId, Username: "bob", Email: "bob@example.com"}

	now := time.Now()
	state.usage = append(state.usage,
		&entity.AiUsage{Id: uuid.New(), UserId: userId, CreditsUsed: 2, Month: int(now.Month()), Year: now.Year(), CreatedAt: now},
		&entity.AiUsage{Id: uuid.New(), UserId: userId, CreditsUsed: 1, Month: int(now.Month()), Year: now.Year(), CreatedAt: now},
	)

	svc := NewUserService(&fakeUowFactory{state: state})

	res, err := svc.GetCurrentUser(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, "bob", res.User.Username)
	assert.Nil(t, res.Subscription, "free users have no subscription row")
	assert.Equal(t, 3, res.AiUsageThisMonth)
}

func TestGetCurrentUser_WithSubscription(t *testing.T) {
	state := newFakeState()
	userId := uuid.New()
	state.users[userId] = &entity.User{Id: userId, Username: "carol", Email: "carol@example.com"}

	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Pro", MonthlyPrice: floatPtr(10), IsActive: true}
	state.plans = append(state.plans, plan)
	state.subs[userId] = &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           plan.Id,
		Status:           entity.SubscriptionStatusActive,
		BillingCycle:     entity.BillingCycleMonthly,
		CurrentPeriodEnd: time.Now().AddDate(0, 1, 0),
	}

	svc := NewUserService(&fakeUowFactory{state: state})

	res, err := svc.GetCurrentUser(context.Background(), userId)
	require.NoError(t, err)

	require.NotNil(t, res.Subscription)
	assert.Equal(t, "active", res.Subscription.Status)
	require.NotNil(t, res.Subscription.Plan)
	assert.Equal(t, "Pro", res.Subscription.Plan.Name)
	assert.Equal(t, 0, res.AiUsageThisMonth)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	state := newFakeState()
	svc := NewUserService(&fakeUowFactory{state: state})

	_, err := svc.GetCurrentUser(context.Background(), uuid.New())
	assert.EqualError(t, err, "user not found")
}
