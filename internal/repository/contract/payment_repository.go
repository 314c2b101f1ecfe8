package contract

import (
	"context"

	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"
)

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error
	UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error
	FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error)
}
