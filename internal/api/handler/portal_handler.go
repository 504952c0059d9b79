package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JoiePasaol/client-management-sub000/internal/api/metrics"
	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

// PortalHandler handles HTTP requests for client portal management and the
// unauthenticated portal view.
type PortalHandler struct {
	service ports.PortalService
}

func NewPortalHandler(service ports.PortalService) *PortalHandler {
	return &PortalHandler{service: service}
}

type setPortalEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type portalInfoResponse struct {
	domain.ClientPortal
	URL string `json:"url"`
}

type portalViewResponse struct {
	ProjectTitle string                 `json:"project_title"`
	Description  string                 `json:"description,omitempty"`
	Status       domain.ProjectStatus   `json:"status"`
	Budget       float64                `json:"budget"`
	TotalPaid    float64                `json:"total_paid"`
	Progress     float64                `json:"progress"`
	Completed    bool                   `json:"completed"`
	Deadline     string                 `json:"deadline"`
	DueIn        domain.DeadlineInfo    `json:"due_in"`
	Payments     []domain.Payment       `json:"payments"`
	Updates      []domain.ProjectUpdate `json:"updates"`
}

func toPortalInfoResponse(info *ports.PortalInfo) portalInfoResponse {
	return portalInfoResponse{ClientPortal: info.Portal, URL: info.URL}
}

// Create handles POST /v1/projects/:id/portal. Creating a portal for a
// project that already has one rotates the token and re-enables access.
//
// @Summary      Create or rotate a project's client portal
// @Tags         portals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id (UUID)"
// @Success      201  {object}  portalInfoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/portal [post]
func (h *PortalHandler) Create(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	info, err := h.service.CreatePortal(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPortalInfoResponse(info))
}

// Get handles GET /v1/projects/:id/portal.
//
// @Summary      Get a project's portal settings and shareable URL
// @Tags         portals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id (UUID)"
// @Success      200  {object}  portalInfoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/portal [get]
func (h *PortalHandler) Get(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	info, err := h.service.GetPortal(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPortalInfoResponse(info))
}

// SetEnabled handles PATCH /v1/projects/:id/portal. Toggling access keeps
// the token, so re-enabling restores the same shareable URL.
//
// @Summary      Enable or disable a project's portal
// @Tags         portals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Project id (UUID)"
// @Param        body  body      setPortalEnabledRequest  true  "Desired state"
// @Success      200   {object}  portalInfoResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/portal [patch]
func (h *PortalHandler) SetEnabled(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req setPortalEnabledRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	info, err := h.service.SetPortalEnabled(c.Request().Context(), projectID, *req.Enabled)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPortalInfoResponse(info))
}

// Delete handles DELETE /v1/projects/:id/portal.
//
// @Summary      Delete a project's portal
// @Tags         portals
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id (UUID)"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/portal [delete]
func (h *PortalHandler) Delete(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeletePortal(c.Request().Context(), projectID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// PublicView handles GET /client-portal/:token without authentication.
// Unknown and disabled tokens both return 404.
//
// @Summary      View a project through its portal token
// @Tags         portals
// @Produce      json
// @Param        token  path      string  true  "Portal access token"
// @Success      200    {object}  portalViewResponse
// @Failure      404    {object}  map[string]string
// @Router       /client-portal/{token} [get]
func (h *PortalHandler) PublicView(c echo.Context) error {
	token := c.Param("token")

	view, err := h.service.GetPortalByToken(c.Request().Context(), token)
	if err != nil {
		metrics.PortalLookupsTotal.WithLabelValues("not_found").Inc()
		return err
	}
	metrics.PortalLookupsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, portalViewResponse{
		ProjectTitle: view.ProjectTitle,
		Description:  view.Description,
		Status:       view.Status,
		Budget:       view.Budget,
		TotalPaid:    view.TotalPaid,
		Progress:     view.Progress,
		Completed:    view.Completed,
		Deadline:     view.Deadline.UTC().Format("2006-01-02"),
		DueIn:        view.DeadlineInfo,
		Payments:     view.Payments,
		Updates:      view.Updates,
	})
}
