package dto

// PaymentReceiptMessage travels over the in-process message bus from the
// webhook handler to the mail consumer.
type PaymentReceiptMessage struct {
	Email        string  `json:"email"`
	PlanName     string  `json:"plan_name"`
	BillingCycle string  `json:"billing_cycle"`
	Amount       float64 `json:"amount"`
}
