package dto

import "github.com/google/uuid"

type CreatePaymentIntentRequest struct {
	PlanId       uuid.UUID `json:"planId" validate:"required"`
	BillingCycle string    `json:"billingCycle" validate:"required,oneof=monthly yearly lifetime"`
}

type CreatePaymentIntentResponse struct {
	IntentId    string  `json:"intentId"`
	CheckoutURL string  `json:"checkoutUrl"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// AirwallexWebhookRequest mirrors the provider's delivery envelope.
// Older deliveries carry the event type under "name" instead of
// "event_type"; Event resolves whichever is present.
type AirwallexWebhookRequest struct {
	Id        string              `json:"id"`
	EventType string              `json:"event_type"`
	Name      string              `json:"name,omitempty"`
	Data      WebhookIntentObject `json:"data"`
}

func (r *AirwallexWebhookRequest) Event() string {
	if r.EventType != "" {
		return r.EventType
	}
	return r.Name
}

type WebhookIntentObject struct {
	Object WebhookIntent `json:"object"`
}

type WebhookIntent struct {
	Id       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type PaymentSuccessResponse struct {
	Status       string                `json:"status"`
	Transaction  *TransactionResponse  `json:"transaction,omitempty"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type TransactionResponse struct {
	Id           uuid.UUID `json:"id"`
	IntentId     string    `json:"intentId"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	BillingCycle string    `json:"billingCycle"`
}
