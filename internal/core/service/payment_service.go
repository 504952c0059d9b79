package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type PaymentService struct {
	repo        ports.PaymentRepository
	projectRepo ports.ProjectRepository
	updateRepo  ports.UpdateRepository
	logger      zerolog.Logger
}

func NewPaymentService(
	repo ports.PaymentRepository,
	projectRepo ports.ProjectRepository,
	updateRepo ports.UpdateRepository,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{repo: repo, projectRepo: projectRepo, updateRepo: updateRepo, logger: logger}
}

// RecordPayment stores a payment and, when the new total reaches the budget
// of a started project, automatically marks the project finished and appends
// an audit update. The transition is best-effort: its failure never fails
// the payment itself.
func (s *PaymentService) RecordPayment(ctx context.Context, input ports.RecordPaymentInput) (*ports.PaymentOutcome, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("record payment: amount must be positive")
	}
	if !domain.ValidPaymentMethod(input.Method) {
		return nil, fmt.Errorf("record payment: unknown method %q", input.Method)
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		Method:      input.Method,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error().Err(err).Str("project_id", input.ProjectID.String()).Msg("failed to record payment")
		return nil, fmt.Errorf("record payment: %w", err)
	}

	total, err := s.repo.TotalForProject(ctx, input.ProjectID)
	if err != nil {
		// The payment is already stored; report it with our best estimate
		// and skip the transition check.
		s.logger.Warn().Err(err).Str("project_id", input.ProjectID.String()).Msg("failed to recompute payment total")
		return &ports.PaymentOutcome{
			Payment:       payment,
			TotalPaid:     input.Amount,
			Progress:      domain.PaymentProgress(input.Amount, project.Budget),
			ProjectStatus: project.Status,
		}, nil
	}

	status := project.Status
	transitioned := false
	if domain.IsPaymentCompleted(total, project.Budget) && project.Status == domain.StatusStarted {
		status, transitioned = s.finishProject(ctx, project, total)
	}

	s.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("project_id", input.ProjectID.String()).
		Float64("amount", input.Amount).
		Float64("total_paid", total).
		Msg("payment recorded")

	return &ports.PaymentOutcome{
		Payment:          payment,
		TotalPaid:        total,
		Progress:         domain.PaymentProgress(total, project.Budget),
		ProjectStatus:    status,
		AutoTransitioned: transitioned,
	}, nil
}

// ListPayments returns a page of the project's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, projectID uuid.UUID, page, limit int) (*ports.ListPaymentsResult, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	items, total, err := s.repo.ListByProject(ctx, projectID, page, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to list payments")
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return &ports.ListPaymentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// DeletePayment removes a payment and, when the remaining total falls below
// the budget of a finished project, reverts the project to started with an
// audit update. The reversion is best-effort like the forward transition.
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) (*ports.PaymentOutcome, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(ctx, payment.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("payment_id", id.String()).Msg("failed to delete payment")
		return nil, fmt.Errorf("delete payment: %w", err)
	}

	total, err := s.repo.TotalForProject(ctx, payment.ProjectID)
	if err != nil {
		s.logger.Warn().Err(err).Str("project_id", payment.ProjectID.String()).Msg("failed to recompute payment total")
		return &ports.PaymentOutcome{ProjectStatus: project.Status}, nil
	}

	status := project.Status
	transitioned := false
	if domain.ShouldRevertStatus(project.Status, total, project.Budget) {
		status, transitioned = s.revertProject(ctx, project, total)
	}

	s.logger.Info().
		Str("payment_id", id.String()).
		Str("project_id", payment.ProjectID.String()).
		Float64("total_paid", total).
		Msg("payment deleted")

	return &ports.PaymentOutcome{
		TotalPaid:        total,
		Progress:         domain.PaymentProgress(total, project.Budget),
		ProjectStatus:    status,
		AutoTransitioned: transitioned,
	}, nil
}

// finishProject applies the started -> finished transition plus its audit
// update. Both writes are non-fatal on failure.
func (s *PaymentService) finishProject(ctx context.Context, project *domain.Project, total float64) (domain.ProjectStatus, bool) {
	if err := s.projectRepo.UpdateStatus(ctx, project.ID, domain.StatusFinished); err != nil {
		s.logger.Warn().Err(err).Str("project_id", project.ID.String()).Msg("auto finish failed")
		return project.Status, false
	}

	s.appendAuditUpdate(ctx, project.ID, fmt.Sprintf(
		"Payments reached the budget (%.2f of %.2f). Project automatically marked as finished.",
		total, project.Budget,
	))

	s.logger.Info().Str("project_id", project.ID.String()).Msg("project auto finished")
	return domain.StatusFinished, true
}

// revertProject applies the finished -> started reversion plus its audit
// update after a payment deletion.
func (s *PaymentService) revertProject(ctx context.Context, project *domain.Project, total float64) (domain.ProjectStatus, bool) {
	if err := s.projectRepo.UpdateStatus(ctx, project.ID, domain.StatusStarted); err != nil {
		s.logger.Warn().Err(err).Str("project_id", project.ID.String()).Msg("auto revert failed")
		return project.Status, false
	}

	s.appendAuditUpdate(ctx, project.ID, fmt.Sprintf(
		"A payment was deleted and the total (%.2f) fell below the budget (%.2f). Project automatically reverted to started.",
		total, project.Budget,
	))

	s.logger.Info().Str("project_id", project.ID.String()).Msg("project auto reverted")
	return domain.StatusStarted, true
}

// appendAuditUpdate records an automatic project update. Non-fatal on failure.
func (s *PaymentService) appendAuditUpdate(ctx context.Context, projectID uuid.UUID, description string) {
	update := &domain.ProjectUpdate{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Description: description,
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		s.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("failed to append audit update")
	}
}
