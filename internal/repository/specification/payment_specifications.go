package specification

import "gorm.io/gorm"

// ByPaymentIntentId filters payment transactions by the provider reference.
type ByPaymentIntentId struct {
	IntentId string
}

func (s ByPaymentIntentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("airwallex_payment_intent_id = ?", s.IntentId)
}

// ActivePlans filters the plan catalog to purchasable tiers.
type ActivePlans struct{}

func (s ActivePlans) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// InMonth scopes usage rows to one month/year bucket.
type InMonth struct {
	Month int
	Year  int
}

func (s InMonth) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("month = ? AND year = ?", s.Month, s.Year)
}
