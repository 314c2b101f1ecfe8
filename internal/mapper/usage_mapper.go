package mapper

import (
	"photopro-be/internal/entity"
	"photopro-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToEntity(u *model.AiUsage) *entity.AiUsage {
	if u == nil {
		return nil
	}
	return &entity.AiUsage{
		Id:             u.Id,
		UserId:         u.UserId,
		SubscriptionId: u.SubscriptionId,
		FeatureType:    u.FeatureType,
		CreditsUsed:    u.CreditsUsed,
		Month:          u.Month,
		Year:           u.Year,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UsageMapper) ToModel(u *entity.AiUsage) *model.AiUsage {
	if u == nil {
		return nil
	}
	return &model.AiUsage{
		Id:             u.Id,
		UserId:         u.UserId,
		SubscriptionId: u.SubscriptionId,
		FeatureType:    u.FeatureType,
		CreditsUsed:    u.CreditsUsed,
		Month:          u.Month,
		Year:           u.Year,
		CreatedAt:      u.CreatedAt,
	}
}
