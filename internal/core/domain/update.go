package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUpdateNotFound = errors.New("project update not found")

// ProjectUpdate is a free-text progress note on a project. Automatic entries
// are appended by the payment write path when the status transitions.
type ProjectUpdate struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
