package mapper

import (
	"encoding/json"

	"photopro-be/internal/entity"
	"photopro-be/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	var features []string
	if len(p.Features) > 0 {
		// Features column is a JSON array of display strings
		_ = json.Unmarshal(p.Features, &features)
	}
	return &entity.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		MonthlyPrice:      p.MonthlyPrice,
		YearlyPrice:       p.YearlyPrice,
		LifetimePrice:     p.LifetimePrice,
		Features:          features,
		AiCreditsPerMonth: p.AiCreditsPerMonth,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	raw, _ := json.Marshal(features)
	return &model.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		MonthlyPrice:      p.MonthlyPrice,
		YearlyPrice:       p.YearlyPrice,
		LifetimePrice:     p.LifetimePrice,
		Features:          datatypes.JSON(raw),
		AiCreditsPerMonth: p.AiCreditsPerMonth,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                      s.Id,
		UserId:                  s.UserId,
		PlanId:                  s.PlanId,
		Status:                  entity.SubscriptionStatus(s.Status),
		BillingCycle:            entity.BillingCycle(s.BillingCycle),
		AirwallexCustomerId:     s.AirwallexCustomerId,
		AirwallexSubscriptionId: s.AirwallexSubscriptionId,
		CurrentPeriodStart:      s.CurrentPeriodStart,
		CurrentPeriodEnd:        s.CurrentPeriodEnd,
		CancelledAt:             s.CancelledAt,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                      s.Id,
		UserId:                  s.UserId,
		PlanId:                  s.PlanId,
		Status:                  string(s.Status),
		BillingCycle:            string(s.BillingCycle),
		AirwallexCustomerId:     s.AirwallexCustomerId,
		AirwallexSubscriptionId: s.AirwallexSubscriptionId,
		CurrentPeriodStart:      s.CurrentPeriodStart,
		CurrentPeriodEnd:        s.CurrentPeriodEnd,
		CancelledAt:             s.CancelledAt,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) TransactionToEntity(t *model.PaymentTransaction) *entity.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &entity.PaymentTransaction{
		Id:                       t.Id,
		UserId:                   t.UserId,
		PlanId:                   t.PlanId,
		SubscriptionId:           t.SubscriptionId,
		AirwallexPaymentIntentId: t.AirwallexPaymentIntentId,
		Amount:                   t.Amount,
		Currency:                 t.Currency,
		Status:                   entity.TransactionStatus(t.Status),
		PaymentMethod:            t.PaymentMethod,
		BillingCycle:             entity.BillingCycle(t.BillingCycle),
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

func (m *SubscriptionMapper) TransactionToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &model.PaymentTransaction{
		Id:                       t.Id,
		UserId:                   t.UserId,
		PlanId:                   t.PlanId,
		SubscriptionId:           t.SubscriptionId,
		AirwallexPaymentIntentId: t.AirwallexPaymentIntentId,
		Amount:                   t.Amount,
		Currency:                 t.Currency,
		Status:                   string(t.Status),
		PaymentMethod:            t.PaymentMethod,
		BillingCycle:             string(t.BillingCycle),
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}
