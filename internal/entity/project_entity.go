// FILE: internal/entity/project_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProject holds saved editor state. ProjectData is an opaque blob the
// backend stores and returns without interpreting.
type UserProject struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	ThumbnailURL *string
	ProjectData  []byte
	LastModified time.Time
	CreatedAt    time.Time
}
