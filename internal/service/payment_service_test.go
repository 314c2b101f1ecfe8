package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func signBody(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func seedUserAndPlan(state *fakeState) (*entity.User, *entity.SubscriptionPlan) {
	user := &entity.User{
		Id:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}
	state.users[user.Id] = user

	plan := &entity.SubscriptionPlan{
		Id:            uuid.New(),
		Name:          "Pro",
		MonthlyPrice:  floatPtr(10),
		YearlyPrice:   floatPtr(96),
		LifetimePrice: floatPtr(99),
		IsActive:      true,
	}
	state.plans = append(state.plans, plan)
	return user, plan
}

const testClientURL = "http://localhost:5173"

func newTestPaymentService(state *fakeState) (IPaymentService, *fakeGateway, *fakeGuard, *fakeReceiptPublisher) {
	gateway := &fakeGateway{}
	guard := newFakeGuard()
	receipts := &fakeReceiptPublisher{}
	svc := NewPaymentService(&fakeUowFactory{state: state}, gateway, guard, testWebhookSecret, testClientURL, nil, receipts, &fakeLogger{})
	return svc, gateway, guard, receipts
}

func TestNextPeriodEnd(t *testing.T) {
	start := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		cycle entity.BillingCycle
		want  time.Time
	}{
		{"monthly adds one month", entity.BillingCycleMonthly, time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)},
		{"yearly adds one year", entity.BillingCycleYearly, time.Date(2027, 3, 15, 12, 0, 0, 0, time.UTC)},
		{"lifetime is far future", entity.BillingCycleLifetime, time.Date(2126, 3, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPeriodEnd(start, tt.cycle))
		})
	}
}

func TestCreateCheckout_RejectsFreePlan(t *testing.T) {
	state := newFakeState()
	user, _ := seedUserAndPlan(state)

	free := &entity.SubscriptionPlan{
		Id:           uuid.New(),
		Name:         "Free",
		MonthlyPrice: floatPtr(0),
		IsActive:     true,
	}
	state.plans = append(state.plans, free)

	svc, gateway, _, _ := newTestPaymentService(state)

	_, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       free.Id,
		BillingCycle: "monthly",
	})

	require.ErrorIs(t, err, ErrFreePlan)
	assert.Empty(t, gateway.checkouts, "free plan must never reach the provider")
	assert.Empty(t, state.txs)
}

func TestCreateCheckout_CreatesPendingTransaction(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, gateway, _, _ := newTestPaymentService(state)

	res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       plan.Id,
		BillingCycle: "yearly",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.CheckoutURL)
	assert.Equal(t, 96.0, res.Amount)

	// Redirect targets come from the configured client URL
	require.Len(t, gateway.checkouts, 1)
	assert.Equal(t, testClientURL+"/payment-success", gateway.checkouts[0].SuccessURL)
	assert.Equal(t, testClientURL+"/pricing", gateway.checkouts[0].CancelURL)

	tx := state.txs[res.IntentId]
	require.NotNil(t, tx)
	assert.Equal(t, plan.Id, tx.PlanId, "plan must be carried on the transaction")
	assert.Equal(t, entity.TransactionStatusPending, tx.Status)
	assert.Equal(t, entity.BillingCycleYearly, tx.BillingCycle)

	// Billing customer is created once and persisted
	require.NotNil(t, state.users[user.Id].BillingCustomerId)
	assert.Equal(t, "bcus_test", *state.users[user.Id].BillingCustomerId)
	assert.Equal(t, 1, gateway.customers)

	// Second checkout reuses the stored customer
	_, err = svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       plan.Id,
		BillingCycle: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.customers)
}

func successWebhookBody(deliveryId, intentId string) []byte {
	return []byte(fmt.Sprintf(`{"id":%q,"event_type":"payment_intent.succeeded","data":{"object":{"id":%q,"amount":96,"currency":"USD","status":"SUCCEEDED"}}}`, deliveryId, intentId))
}

func TestHandleWebhook_RejectsInvalidSignature(t *testing.T) {
	state := newFakeState()
	svc, _, _, _ := newTestPaymentService(state)

	body := successWebhookBody("evt_1", "int_1")
	err := svc.HandleWebhook(context.Background(), body, "1700000000", "deadbeef")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_SucceededActivatesSubscription(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, _, _, receipts := newTestPaymentService(state)

	res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       plan.Id,
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	body := successWebhookBody("evt_1", res.IntentId)
	ts := "1700000000"
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))

	tx := state.txs[res.IntentId]
	assert.Equal(t, entity.TransactionStatusSucceeded, tx.Status)

	sub := state.subs[user.Id]
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, plan.Id, sub.PlanId)
	assert.Equal(t, entity.BillingCycleMonthly, sub.BillingCycle)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), sub.CurrentPeriodEnd, time.Minute)
	require.NotNil(t, tx.SubscriptionId)
	assert.Equal(t, sub.Id, *tx.SubscriptionId)

	require.Len(t, receipts.receipts, 1)
	assert.Equal(t, user.Email, receipts.receipts[0].Email)
	assert.Equal(t, "Pro", receipts.receipts[0].PlanName)
}

func TestHandleWebhook_NameFieldEnvelope(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, _, _, _ := newTestPaymentService(state)

	res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       plan.Id,
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	// Deliveries that carry the type under "name" reconcile the same way
	body := []byte(fmt.Sprintf(`{"id":"evt_n","name":"payment_intent.succeeded","data":{"object":{"id":%q,"amount":10,"currency":"USD","status":"SUCCEEDED"}}}`, res.IntentId))
	ts := "1700000000"
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))

	assert.Equal(t, entity.TransactionStatusSucceeded, state.txs[res.IntentId].Status)
	require.NotNil(t, state.subs[user.Id])
	assert.Equal(t, entity.SubscriptionStatusActive, state.subs[user.Id].Status)
}

func TestHandleWebhook_DuplicateDeliveryIsNoop(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, _, _, receipts := newTestPaymentService(state)

	res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId:       plan.Id,
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	body := successWebhookBody("evt_dup", res.IntentId)
	ts := "1700000000"
	sig := signBody(ts, body)

	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, sig))
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, sig))

	assert.Len(t, receipts.receipts, 1, "redelivery must not reprocess")
	assert.Len(t, state.subs, 1)
}

func TestHandleWebhook_UpgradeUpdatesExistingRow(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)

	enterprise := &entity.SubscriptionPlan{
		Id:           uuid.New(),
		Name:         "Enterprise",
		MonthlyPrice: floatPtr(25),
		IsActive:     true,
	}
	state.plans = append(state.plans, enterprise)

	svc, _, _, _ := newTestPaymentService(state)
	ts := "1700000000"

	// First purchase: Pro monthly
	res1, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId: plan.Id, BillingCycle: "monthly",
	})
	require.NoError(t, err)
	body := successWebhookBody("evt_a", res1.IntentId)
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))

	firstSubId := state.subs[user.Id].Id

	// Upgrade: Enterprise monthly
	res2, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId: enterprise.Id, BillingCycle: "monthly",
	})
	require.NoError(t, err)
	body = successWebhookBody("evt_b", res2.IntentId)
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))

	require.Len(t, state.subs, 1, "one subscription row per user")
	sub := state.subs[user.Id]
	assert.Equal(t, firstSubId, sub.Id, "existing row is updated, not replaced")
	assert.Equal(t, enterprise.Id, sub.PlanId)
}

func TestHandleWebhook_FailedMarksTransaction(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, _, _, _ := newTestPaymentService(state)

	res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreatePaymentIntentRequest{
		PlanId: plan.Id, BillingCycle: "monthly",
	})
	require.NoError(t, err)

	body := []byte(fmt.Sprintf(`{"id":"evt_f","event_type":"payment_intent.failed","data":{"object":{"id":%q}}}`, res.IntentId))
	ts := "1700000000"
	require.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))

	assert.Equal(t, entity.TransactionStatusFailed, state.txs[res.IntentId].Status)
	assert.Empty(t, state.subs, "failed payment must not activate anything")
}

func TestHandleWebhook_UnknownEventAcked(t *testing.T) {
	state := newFakeState()
	svc, _, _, _ := newTestPaymentService(state)

	body := []byte(`{"id":"evt_x","event_type":"refund.settled","data":{"object":{"id":"int_x"}}}`)
	ts := "1700000000"

	assert.NoError(t, svc.HandleWebhook(context.Background(), body, ts, signBody(ts, body)))
}

func TestCancelSubscription_KeepsAccessUntilPeriodEnd(t *testing.T) {
	state := newFakeState()
	user, plan := seedUserAndPlan(state)
	svc, _, _, _ := newTestPaymentService(state)

	periodEnd := time.Now().AddDate(0, 1, 0)
	state.subs[user.Id] = &entity.UserSubscription{
		Id:                 uuid.New(),
		UserId:             user.Id,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		BillingCycle:       entity.BillingCycleMonthly,
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   periodEnd,
	}

	res, err := svc.CancelSubscription(context.Background(), user.Id)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusCancelled), res.Status)
	assert.NotNil(t, res.CancelledAt)
	assert.Equal(t, periodEnd.Unix(), res.CurrentPeriodEnd.Unix(), "paid period stays untouched")

	sub := state.subs[user.Id]
	assert.True(t, sub.IsCurrent(time.Now()), "access remains until the period ends")

	// Second cancel is rejected
	_, err = svc.CancelSubscription(context.Background(), user.Id)
	assert.Error(t, err)
}

func TestCancelSubscription_NoSubscription(t *testing.T) {
	state := newFakeState()
	user, _ := seedUserAndPlan(state)
	svc, _, _, _ := newTestPaymentService(state)

	_, err := svc.CancelSubscription(context.Background(), user.Id)
	assert.ErrorIs(t, err, ErrNoSubscription)
}
