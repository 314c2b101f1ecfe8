package contract

import (
	"context"

	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.UserProject) error
	Update(ctx context.Context, project *entity.UserProject) error
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProject, error)
}
