package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SaveProjectRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	ThumbnailURL *string         `json:"thumbnailUrl,omitempty"`
	ProjectData  json.RawMessage `json:"projectData" validate:"required"`
}

type ProjectResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	ThumbnailURL *string         `json:"thumbnailUrl,omitempty"`
	ProjectData  json.RawMessage `json:"projectData"`
	LastModified time.Time       `json:"lastModified"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ProjectListItem omits the data blob so listing stays light.
type ProjectListItem struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	LastModified time.Time `json:"lastModified"`
	CreatedAt    time.Time `json:"createdAt"`
}
