package unitofwork

import (
	"context"

	"photopro-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PaymentRepository() contract.PaymentRepository
	ProjectRepository() contract.ProjectRepository
	UsageRepository() contract.UsageRepository
}
