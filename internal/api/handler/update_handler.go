package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

// UpdateHandler handles HTTP requests for project update notes.
type UpdateHandler struct {
	service ports.UpdateService
}

func NewUpdateHandler(service ports.UpdateService) *UpdateHandler {
	return &UpdateHandler{service: service}
}

type updateNoteRequest struct {
	Description string `json:"description" validate:"required"`
}

// Add handles POST /v1/projects/:id/updates.
//
// @Summary      Add a progress update to a project
// @Tags         updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Project id (UUID)"
// @Param        body  body      updateNoteRequest  true  "Update text"
// @Success      201   {object}  domain.ProjectUpdate
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/updates [post]
func (h *UpdateHandler) Add(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := h.service.AddUpdate(c.Request().Context(), projectID, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, update)
}

// List handles GET /v1/projects/:id/updates.
//
// @Summary      List a project's updates, newest first
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id (UUID)"
// @Success      200  {array}   domain.ProjectUpdate
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/updates [get]
func (h *UpdateHandler) List(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	updates, err := h.service.ListUpdates(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updates)
}

// Edit handles PUT /v1/updates/:id.
//
// @Summary      Edit an update's text
// @Tags         updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Update id (UUID)"
// @Param        body  body      updateNoteRequest  true  "New update text"
// @Success      200   {object}  domain.ProjectUpdate
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/updates/{id} [put]
func (h *UpdateHandler) Edit(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := h.service.EditUpdate(c.Request().Context(), id, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, update)
}

// Delete handles DELETE /v1/updates/:id.
//
// @Summary      Delete an update
// @Tags         updates
// @Security     BearerAuth
// @Param        id  path  string  true  "Update id (UUID)"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/updates/{id} [delete]
func (h *UpdateHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteUpdate(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
