package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JoiePasaol/client-management-sub000/internal/api/metrics"
	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type recordPaymentRequest struct {
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
	Method      string    `json:"method" validate:"required,oneof=bank_transfer cash check"`
}

type paymentOutcomeResponse struct {
	Payment          *domain.Payment      `json:"payment,omitempty"`
	TotalPaid        float64              `json:"total_paid"`
	Progress         float64              `json:"progress"`
	ProjectStatus    domain.ProjectStatus `json:"project_status"`
	AutoTransitioned bool                 `json:"auto_transitioned"`
}

type listPaymentsResponse struct {
	Items      []domain.Payment `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func toPaymentOutcomeResponse(o *ports.PaymentOutcome) paymentOutcomeResponse {
	return paymentOutcomeResponse{
		Payment:          o.Payment,
		TotalPaid:        o.TotalPaid,
		Progress:         o.Progress,
		ProjectStatus:    o.ProjectStatus,
		AutoTransitioned: o.AutoTransitioned,
	}
}

// Record handles POST /v1/projects/:id/payments. When the new total reaches
// the budget, the response reflects the automatic transition to finished.
//
// @Summary      Record a payment against a project
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id (UUID)"
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  paymentOutcomeResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.RecordPayment(c.Request().Context(), ports.RecordPaymentInput{
		ProjectID:   projectID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      domain.PaymentMethod(req.Method),
	})
	if err != nil {
		return err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(req.Method).Inc()
	if outcome.AutoTransitioned {
		metrics.StatusTransitionsTotal.WithLabelValues("finished").Inc()
	}

	return c.JSON(http.StatusCreated, toPaymentOutcomeResponse(outcome))
}

// List handles GET /v1/projects/:id/payments.
//
// @Summary      List a project's payments, newest first
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Project id (UUID)"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Rows per page (max 100)"
// @Success      200    {object}  listPaymentsResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/projects/{id}/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.service.ListPayments(c.Request().Context(), projectID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPaymentsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Delete handles DELETE /v1/payments/:id. When the remaining total drops
// below the budget of a finished project, the response reflects the
// automatic reversion to started.
//
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id (UUID)"
// @Success      200  {object}  paymentOutcomeResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	outcome, err := h.service.DeletePayment(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if outcome.AutoTransitioned {
		metrics.StatusTransitionsTotal.WithLabelValues("reverted").Inc()
	}

	return c.JSON(http.StatusOK, toPaymentOutcomeResponse(outcome))
}
