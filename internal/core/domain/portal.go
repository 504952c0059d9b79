package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrPortalNotFound is returned for unknown and disabled portal tokens alike,
// so a lookup never reveals whether a token ever existed.
var ErrPortalNotFound = errors.New("portal not found")

// ClientPortal grants unauthenticated read access to one project's status,
// payments, and updates while enabled. A project has at most one portal;
// re-creating it rotates the access token.
type ClientPortal struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex"`
	AccessToken string    `json:"access_token" gorm:"not null;uniqueIndex"`
	Enabled     bool      `json:"enabled" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
