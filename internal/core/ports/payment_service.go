package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

// RecordPaymentInput carries all data needed to record a payment.
type RecordPaymentInput struct {
	ProjectID   uuid.UUID
	Amount      float64
	PaymentDate time.Time
	Method      domain.PaymentMethod
}

// PaymentOutcome is returned after a payment mutation. AutoTransitioned is
// true when the mutation triggered an automatic project status change.
type PaymentOutcome struct {
	Payment          *domain.Payment // nil for deletions
	TotalPaid        float64
	Progress         float64
	ProjectStatus    domain.ProjectStatus
	AutoTransitioned bool
}

// ListPaymentsResult is returned by ListPayments.
type ListPaymentsResult struct {
	Items      []domain.Payment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PaymentService defines use-case operations for payments, including the
// automatic status transitions triggered by totals crossing the budget.
type PaymentService interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentOutcome, error)
	ListPayments(ctx context.Context, projectID uuid.UUID, page, limit int) (*ListPaymentsResult, error)
	DeletePayment(ctx context.Context, id uuid.UUID) (*PaymentOutcome, error)
}
