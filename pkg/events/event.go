package events

import "time"

// Event is the contract every published system event satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and
// reconstructed on the subscriber side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Domain event codes.
const (
	TypeUserRegistered        = "USER_REGISTERED"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
	TypePaymentFailed         = "PAYMENT_FAILED"
)

// NewUserRegistered is emitted after a successful registration.
func NewUserRegistered(userId, email, username string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id":  userId,
			"email":    email,
			"username": username,
		},
		OccurredAt: time.Now(),
	}
}

// NewSubscriptionActivated is emitted once a payment intent has been
// reconciled and the subscription activated.
func NewSubscriptionActivated(userId, planId, intentId string, amount float64) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"user_id":   userId,
			"plan_id":   planId,
			"intent_id": intentId,
			"amount":    amount,
		},
		OccurredAt: time.Now(),
	}
}

// NewPaymentFailed is emitted when the provider reports a failed intent.
func NewPaymentFailed(userId, intentId string) Event {
	return BaseEvent{
		Type: TypePaymentFailed,
		Data: map[string]interface{}{
			"user_id":   userId,
			"intent_id": intentId,
		},
		OccurredAt: time.Now(),
	}
}
