package handler

import (
	"time"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type createProjectRequest struct {
	ClientID    string    `json:"client_id" validate:"required,uuid"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Budget      float64   `json:"budget" validate:"required,gt=0"`
}

type updateProjectRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=started finished"`
}

type projectSummaryResponse struct {
	domain.Project
	ClientName string  `json:"client_name"`
	TotalPaid  float64 `json:"total_paid"`
	Progress   float64 `json:"progress"`
}

type projectDetailResponse struct {
	domain.Project
	ClientName string              `json:"client_name"`
	TotalPaid  float64             `json:"total_paid"`
	Progress   float64             `json:"progress"`
	Completed  bool                `json:"completed"`
	DueIn      domain.DeadlineInfo `json:"due_in"`
}

type invoiceResponse struct {
	InvoiceURL string `json:"invoice_url"`
}

func toProjectSummaryResponse(s ports.ProjectSummary) projectSummaryResponse {
	return projectSummaryResponse{
		Project:    s.Project,
		ClientName: s.ClientName,
		TotalPaid:  s.TotalPaid,
		Progress:   domain.PaymentProgress(s.TotalPaid, s.Project.Budget),
	}
}

func toProjectDetailResponse(d *ports.ProjectDetail) projectDetailResponse {
	return projectDetailResponse{
		Project:    d.Project,
		ClientName: d.ClientName,
		TotalPaid:  d.TotalPaid,
		Progress:   d.Progress,
		Completed:  d.Completed,
		DueIn:      d.Deadline,
	}
}
