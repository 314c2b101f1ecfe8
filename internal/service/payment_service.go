// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/pkg/logger"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"photopro-be/pkg/airwallex"
	"photopro-be/pkg/events"
	pktNats "photopro-be/pkg/nats" // Renamed to avoid collision
	"photopro-be/pkg/store"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrFreePlan         = errors.New("selected plan has no charge for this billing cycle")
	ErrNoSubscription   = errors.New("no subscription found")
)

// BillingGateway is the slice of the Airwallex client the payment flow
// needs. Tests substitute a fake.
type BillingGateway interface {
	CreateBillingCustomer(ctx context.Context, email, firstName, lastName string) (*airwallex.BillingCustomer, error)
	CreateCheckout(ctx context.Context, p airwallex.CheckoutParams) (*airwallex.CheckoutSession, error)
}

type IPaymentService interface {
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error)
	HandleWebhook(ctx context.Context, body []byte, timestamp, signature string) error
	PaymentSuccess(ctx context.Context, intentId string) (*dto.PaymentSuccessResponse, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
}

type paymentService struct {
	uowFactory       unitofwork.RepositoryFactory
	gateway          BillingGateway
	guard            store.WebhookGuard
	webhookSecret    string
	clientURL        string
	eventPublisher   *pktNats.Publisher
	receiptPublisher IPublisherService
	logger           logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway BillingGateway,
	guard store.WebhookGuard,
	webhookSecret string,
	clientURL string,
	eventPublisher *pktNats.Publisher,
	receiptPublisher IPublisherService,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:       uowFactory,
		gateway:          gateway,
		guard:            guard,
		webhookSecret:    webhookSecret,
		clientURL:        clientURL,
		eventPublisher:   eventPublisher,
		receiptPublisher: receiptPublisher,
		logger:           log,
	}
}

// nextPeriodEnd computes when a freshly paid period runs out. Lifetime
// purchases get a far-future end so downstream checks stay uniform.
func nextPeriodEnd(start time.Time, cycle entity.BillingCycle) time.Time {
	switch cycle {
	case entity.BillingCycleYearly:
		return start.AddDate(1, 0, 0)
	case entity.BillingCycleLifetime:
		return start.AddDate(100, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	if !entity.ValidBillingCycle(req.BillingCycle) {
		return nil, errors.New("invalid billing cycle")
	}
	cycle := entity.BillingCycle(req.BillingCycle)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	// Free tiers never reach the provider
	amount := plan.PriceFor(cycle)
	if amount <= 0 {
		return nil, ErrFreePlan
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// Reuse the billing customer from earlier checkouts
	customerId := ""
	if user.BillingCustomerId != nil {
		customerId = *user.BillingCustomerId
	} else {
		firstName, lastName := "", ""
		if user.FirstName != nil {
			firstName = *user.FirstName
		}
		if user.LastName != nil {
			lastName = *user.LastName
		}
		customer, err := s.gateway.CreateBillingCustomer(ctx, user.Email, firstName, lastName)
		if err != nil {
			return nil, fmt.Errorf("failed to create billing customer: %w", err)
		}
		customerId = customer.Id
		if err := uow.UserRepository().SetBillingCustomerId(ctx, userId, customerId); err != nil {
			return nil, err
		}
	}

	session, err := s.gateway.CreateCheckout(ctx, airwallex.CheckoutParams{
		CustomerId:         customerId,
		AmountCents:        int64(amount * 100),
		Currency:           "USD",
		BillingCycle:       string(cycle),
		ProductName:        fmt.Sprintf("PhotoPro %s Plan", plan.Name),
		ProductDescription: fmt.Sprintf("%s billing", cycle),
		SuccessURL:         fmt.Sprintf("%s/payment-success", s.clientURL),
		CancelURL:          fmt.Sprintf("%s/pricing", s.clientURL),
		Metadata: map[string]string{
			"user_id":       userId.String(),
			"plan_id":       plan.Id.String(),
			"billing_cycle": string(cycle),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	// Record the pending transaction with the plan attached so the webhook
	// never has to re-derive what was bought.
	tx := &entity.PaymentTransaction{
		Id:                       uuid.New(),
		UserId:                   userId,
		PlanId:                   plan.Id,
		AirwallexPaymentIntentId: session.Id,
		Amount:                   amount,
		Currency:                 "USD",
		Status:                   entity.TransactionStatusPending,
		BillingCycle:             cycle,
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}
	if err := uow.PaymentRepository().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return &dto.CreatePaymentIntentResponse{
		IntentId:    session.Id,
		CheckoutURL: session.URL,
		Amount:      amount,
		Currency:    "USD",
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, timestamp, signature string) error {
	// Reject forged deliveries before touching any state
	if !airwallex.VerifySignature(s.webhookSecret, timestamp, body, signature) {
		return ErrInvalidSignature
	}

	var req dto.AirwallexWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}

	// Dedup retried deliveries. The provider retries until it sees a 200,
	// so an id we already claimed is acked without reprocessing.
	if s.guard != nil && req.Id != "" {
		fresh, err := s.guard.Claim(ctx, req.Id)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}
	}

	var handleErr error
	switch req.Event() {
	case "payment_intent.succeeded":
		handleErr = s.handlePaymentSucceeded(ctx, &req)
	case "payment_intent.failed":
		handleErr = s.handlePaymentFailed(ctx, &req)
	default:
		// Unknown event types are acked so the provider stops retrying
		return nil
	}

	if handleErr != nil && s.guard != nil && req.Id != "" {
		// Free the claim so the provider's retry can land
		if releaseErr := s.guard.Release(ctx, req.Id); releaseErr != nil {
			s.logger.Warn("PaymentService", "Failed to release webhook claim", map[string]interface{}{
				"delivery_id": req.Id,
				"error":       releaseErr.Error(),
			})
		}
	}
	return handleErr
}

func (s *paymentService) handlePaymentSucceeded(ctx context.Context, req *dto.AirwallexWebhookRequest) error {
	intentId := req.Data.Object.Id
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOneTransaction(ctx, specification.ByPaymentIntentId{IntentId: intentId})
	if err != nil {
		return err
	}
	if tx == nil {
		// Intent we never created a checkout for; ack and move on
		s.logger.Warn("PaymentService", "Webhook for unknown intent", map[string]interface{}{"intent_id": intentId})
		return nil
	}
	if tx.Status == entity.TransactionStatusSucceeded {
		return nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: tx.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	now := time.Now()
	periodEnd := nextPeriodEnd(now, tx.BillingCycle)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// One subscription row per user: update in place when it exists
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: tx.UserId})
	if err != nil {
		return err
	}
	if sub == nil {
		sub = &entity.UserSubscription{
			Id:                 uuid.New(),
			UserId:             tx.UserId,
			PlanId:             tx.PlanId,
			Status:             entity.SubscriptionStatusActive,
			BillingCycle:       tx.BillingCycle,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   periodEnd,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
			return err
		}
	} else {
		sub.PlanId = tx.PlanId
		sub.Status = entity.SubscriptionStatusActive
		sub.BillingCycle = tx.BillingCycle
		sub.CurrentPeriodStart = now
		sub.CurrentPeriodEnd = periodEnd
		sub.CancelledAt = nil
		sub.UpdatedAt = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return err
		}
	}

	tx.Status = entity.TransactionStatusSucceeded
	tx.SubscriptionId = &sub.Id
	tx.UpdatedAt = now
	if err := uow.PaymentRepository().UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Side effects after the commit: receipt email and domain event
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: tx.UserId})
	if err == nil && user != nil && s.receiptPublisher != nil {
		msg := &dto.PaymentReceiptMessage{
			Email:        user.Email,
			PlanName:     plan.Name,
			BillingCycle: string(tx.BillingCycle),
			Amount:       tx.Amount,
		}
		if pubErr := s.receiptPublisher.PublishPaymentReceipt(msg); pubErr != nil {
			s.logger.Warn("PaymentService", "Failed to queue receipt", map[string]interface{}{
				"email": user.Email,
				"error": pubErr.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		if pubErr := s.eventPublisher.Publish(ctx, events.NewSubscriptionActivated(
			tx.UserId.String(), tx.PlanId.String(), intentId, tx.Amount)); pubErr != nil {
			s.logger.Warn("PaymentService", "Failed to publish SUBSCRIPTION_ACTIVATED", map[string]interface{}{"error": pubErr.Error()})
		}
	}

	return nil
}

func (s *paymentService) handlePaymentFailed(ctx context.Context, req *dto.AirwallexWebhookRequest) error {
	intentId := req.Data.Object.Id
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOneTransaction(ctx, specification.ByPaymentIntentId{IntentId: intentId})
	if err != nil {
		return err
	}
	if tx == nil {
		return nil
	}
	if tx.Status == entity.TransactionStatusSucceeded {
		// A failure after a success is stale provider noise
		return nil
	}

	tx.Status = entity.TransactionStatusFailed
	tx.UpdatedAt = time.Now()
	if err := uow.PaymentRepository().UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		if pubErr := s.eventPublisher.Publish(ctx, events.NewPaymentFailed(tx.UserId.String(), intentId)); pubErr != nil {
			s.logger.Warn("PaymentService", "Failed to publish PAYMENT_FAILED", map[string]interface{}{"error": pubErr.Error()})
		}
	}

	return nil
}

func (s *paymentService) PaymentSuccess(ctx context.Context, intentId string) (*dto.PaymentSuccessResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOneTransaction(ctx, specification.ByPaymentIntentId{IntentId: intentId})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.New("transaction not found")
	}

	res := &dto.PaymentSuccessResponse{
		Status: string(tx.Status),
		Transaction: &dto.TransactionResponse{
			Id:           tx.Id,
			IntentId:     tx.AirwallexPaymentIntentId,
			Amount:       tx.Amount,
			Currency:     tx.Currency,
			Status:       string(tx.Status),
			BillingCycle: string(tx.BillingCycle),
		},
	}

	// The webhook may still be in flight; the subscription shows up once
	// reconciliation lands and the frontend polls this endpoint.
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: tx.UserId})
	if err != nil {
		return nil, err
	}
	if sub != nil {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
		if err != nil {
			return nil, err
		}
		res.Subscription = toSubscriptionResponse(sub, plan)
	}

	return res, nil
}

func (s *paymentService) CancelSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoSubscription
	}
	if sub.Status == entity.SubscriptionStatusCancelled {
		return nil, errors.New("subscription already cancelled")
	}

	// Access runs until the end of the paid period; only the status flips
	now := time.Now()
	sub.Status = entity.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	return toSubscriptionResponse(sub, plan), nil
}
