package mapper

import (
	"photopro-be/internal/entity"
	"photopro-be/internal/model"

	"gorm.io/datatypes"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.UserProject) *entity.UserProject {
	if p == nil {
		return nil
	}
	return &entity.UserProject{
		Id:           p.Id,
		UserId:       p.UserId,
		Name:         p.Name,
		ThumbnailURL: p.ThumbnailURL,
		ProjectData:  []byte(p.ProjectData),
		LastModified: p.LastModified,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *ProjectMapper) ToModel(p *entity.UserProject) *model.UserProject {
	if p == nil {
		return nil
	}
	return &model.UserProject{
		Id:           p.Id,
		UserId:       p.UserId,
		Name:         p.Name,
		ThumbnailURL: p.ThumbnailURL,
		ProjectData:  datatypes.JSON(p.ProjectData),
		LastModified: p.LastModified,
		CreatedAt:    p.CreatedAt,
	}
}
