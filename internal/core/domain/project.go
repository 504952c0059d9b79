package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusStarted  ProjectStatus = "started"
	StatusFinished ProjectStatus = "finished"
)

var ErrProjectNotFound = errors.New("project not found")

// ValidProjectStatus reports whether s is one of the known statuses.
func ValidProjectStatus(s ProjectStatus) bool {
	return s == StatusStarted || s == StatusFinished
}

// Project belongs to exactly one client and owns its payments, updates, and
// at most one portal. Status is a soft invariant: payment create/delete keep
// it in sync with the budget, but manual edits may diverge on purpose.
type Project struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID       `json:"client_id" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description"`
	Deadline    time.Time       `json:"deadline"`
	Budget      float64         `json:"budget" gorm:"not null"`
	Status      ProjectStatus   `json:"status" gorm:"type:varchar(20);not null;default:'started'"`
	InvoiceURL  string          `json:"invoice_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	Payments    []Payment       `json:"payments,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Updates     []ProjectUpdate `json:"updates,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Portal      *ClientPortal   `json:"portal,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
