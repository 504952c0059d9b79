package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/JoiePasaol/client-management-sub000/internal/api/metrics"
	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

// maxInvoiceSize caps uploaded invoice files at 10 MiB.
const maxInvoiceSize = 10 << 20

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /v1/projects.
//
// @Summary      Create a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client_id")
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project with payments, updates, and derived statistics
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id (UUID)"
// @Success      200  {object}  projectDetailResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.service.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectDetailResponse(detail))
}

// List handles GET /v1/projects.
//
// @Summary      List projects, optionally filtered by client or status
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter to one client (UUID)"
// @Param        status     query     string  false  "Filter by status"  Enums(started, finished)
// @Success      200        {array}   projectSummaryResponse
// @Failure      400        {object}  map[string]string
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var input ports.ListProjectsInput

	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid client_id")
		}
		input.ClientID = clientID
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := domain.ProjectStatus(raw)
		if !domain.ValidProjectStatus(status) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		input.Status = status
	}

	summaries, err := h.service.ListProjects(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]projectSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, toProjectSummaryResponse(s))
	}

	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /v1/projects/:id. Absent fields are left untouched.
// Status may be set manually here even when it disagrees with the payment
// total; only the payment write path reconciles the two.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id (UUID)"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.service.UpdateProject(c.Request().Context(), id, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project and all dependent records
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id (UUID)"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteProject(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachInvoice handles POST /v1/projects/:id/invoice. Accepts a multipart
// form with a "file" part and replaces any previously stored invoice.
//
// @Summary      Upload an invoice file for a project
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Project id (UUID)"
// @Param        file  formData  file    true  "Invoice file (max 10 MiB)"
// @Success      200   {object}  invoiceResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/invoice [post]
func (h *ProjectHandler) AttachInvoice(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fileHeader.Size > maxInvoiceSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	url, err := h.service.AttachInvoice(c.Request().Context(), id, ports.InvoiceUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return err
	}

	metrics.InvoiceUploadsTotal.Inc()

	return c.JSON(http.StatusOK, invoiceResponse{InvoiceURL: url})
}
