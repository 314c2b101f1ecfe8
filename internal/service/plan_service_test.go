package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlans(t *testing.T) {
	plans := DefaultPlans()
	require.Len(t, plans, 3)

	byName := make(map[string]int)
	for i, p := range plans {
		byName[p.Name] = i
		assert.True(t, p.IsActive)

		for _, price := range []*float64{p.MonthlyPrice, p.YearlyPrice, p.LifetimePrice} {
			if price != nil {
				assert.GreaterOrEqual(t, *price, 0.0)
			}
		}
	}

	free := plans[byName["Free"]]
	require.NotNil(t, free.AiCreditsPerMonth)
	assert.Equal(t, 5, *free.AiCreditsPerMonth)
	assert.Nil(t, free.LifetimePrice, "Free has no lifetime purchase")

	pro := plans[byName["Pro"]]
	assert.Nil(t, pro.AiCreditsPerMonth, "Pro is unlimited")
	require.NotNil(t, pro.LifetimePrice)
	assert.Equal(t, 99.0, *pro.LifetimePrice)

	enterprise := plans[byName["Enterprise"]]
	assert.Nil(t, enterprise.AiCreditsPerMonth)
	assert.Nil(t, enterprise.LifetimePrice)
}

func TestEnsureDefaultPlans(t *testing.T) {
	state := newFakeState()
	svc := NewPlanService(&fakeUowFactory{state: state})

	seeded, err := svc.EnsureDefaultPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)
	assert.Len(t, state.plans, 3)

	// Re-running against a populated catalog is a no-op
	seeded, err = svc.EnsureDefaultPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
	assert.Len(t, state.plans, 3)
}

func TestGetPlans_CachesCatalog(t *testing.T) {
	state := newFakeState()
	svc := NewPlanService(&fakeUowFactory{state: state})

	_, err := svc.EnsureDefaultPlans(context.Background())
	require.NoError(t, err)

	first, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Mutate the store behind the cache; the cached view is served
	state.plans = state.plans[:1]
	second, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 3)
}
