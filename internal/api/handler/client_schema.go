package handler

import (
	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type createClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

type updateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Company *string `json:"company,omitempty"`
}

type clientSummaryResponse struct {
	domain.Client
	ProjectCount int64 `json:"project_count"`
}

type listClientsResponse struct {
	Items      []clientSummaryResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

type projectBalanceResponse struct {
	domain.Project
	TotalPaid float64 `json:"total_paid"`
	Progress  float64 `json:"progress"`
}

type clientDetailResponse struct {
	domain.Client
	Projects []projectBalanceResponse `json:"projects"`
}

func toClientDetailResponse(detail *ports.ClientDetail) clientDetailResponse {
	projects := make([]projectBalanceResponse, 0, len(detail.Projects))
	for _, pb := range detail.Projects {
		p := pb.Project
		p.Payments = nil
		projects = append(projects, projectBalanceResponse{
			Project:   p,
			TotalPaid: pb.TotalPaid,
			Progress:  pb.Progress,
		})
	}
	client := detail.Client
	client.Projects = nil
	return clientDetailResponse{Client: client, Projects: projects}
}
