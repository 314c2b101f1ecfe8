// FILE: internal/service/project_service.go
package service

import (
	"context"
	"errors"
	"time"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type IProjectService interface {
	SaveProject(ctx context.Context, userId uuid.UUID, req *dto.SaveProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, userId, projectId uuid.UUID, req *dto.SaveProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userId, projectId uuid.UUID) error
	GetProject(ctx context.Context, userId, projectId uuid.UUID) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectListItem, error)
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{uowFactory: uowFactory}
}

func toProjectResponse(p *entity.UserProject) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		Id:           p.Id,
		Name:         p.Name,
		ThumbnailURL: p.ThumbnailURL,
		ProjectData:  p.ProjectData,
		LastModified: p.LastModified,
		CreatedAt:    p.CreatedAt,
	}
}

func (s *projectService) SaveProject(ctx context.Context, userId uuid.UUID, req *dto.SaveProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project := &entity.UserProject{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         req.Name,
		ThumbnailURL: req.ThumbnailURL,
		ProjectData:  req.ProjectData,
		LastModified: time.Now(),
		CreatedAt:    time.Now(),
	}
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) UpdateProject(ctx context.Context, userId, projectId uuid.UUID, req *dto.SaveProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership check rides on the query itself
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	project.Name = req.Name
	project.ThumbnailURL = req.ThumbnailURL
	project.ProjectData = req.ProjectData
	project.LastModified = time.Now()

	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return toProjectResponse(project), nil
}

func (s *projectService) DeleteProject(ctx context.Context, userId, projectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	return uow.ProjectRepository().Delete(ctx, projectId, userId)
}

func (s *projectService) GetProject(ctx context.Context, userId, projectId uuid.UUID) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return toProjectResponse(project), nil
}

func (s *projectService) ListProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "last_modified", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProjectListItem, 0, len(projects))
	for _, p := range projects {
		res = append(res, &dto.ProjectListItem{
			Id:           p.Id,
			Name:         p.Name,
			ThumbnailURL: p.ThumbnailURL,
			LastModified: p.LastModified,
			CreatedAt:    p.CreatedAt,
		})
	}
	return res, nil
}
