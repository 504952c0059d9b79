package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

func newPaymentFixture() (*PaymentService, *stubPaymentRepo, *stubProjectRepo, *stubUpdateRepo, *domain.Project) {
	paymentRepo := newStubPaymentRepo()
	projectRepo := newStubProjectRepo()
	updateRepo := newStubUpdateRepo()

	project := &domain.Project{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Title:    "Website redesign",
		Budget:   10000,
		Status:   domain.StatusStarted,
		Deadline: time.Now().Add(30 * 24 * time.Hour),
	}
	projectRepo.put(project)

	svc := NewPaymentService(paymentRepo, projectRepo, updateRepo, zerolog.Nop())
	return svc, paymentRepo, projectRepo, updateRepo, project
}

func recordPayment(t *testing.T, svc *PaymentService, projectID uuid.UUID, amount float64) *ports.PaymentOutcome {
	t.Helper()
	outcome, err := svc.RecordPayment(context.Background(), ports.RecordPaymentInput{
		ProjectID:   projectID,
		Amount:      amount,
		PaymentDate: time.Now(),
		Method:      domain.MethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("RecordPayment(%v): %v", amount, err)
	}
	return outcome
}

func TestRecordPayment_PartialDoesNotTransition(t *testing.T) {
	svc, _, projectRepo, updateRepo, project := newPaymentFixture()

	outcome := recordPayment(t, svc, project.ID, 4000)

	if outcome.AutoTransitioned {
		t.Error("partial payment should not transition the project")
	}
	if outcome.ProjectStatus != domain.StatusStarted {
		t.Errorf("status = %q, want started", outcome.ProjectStatus)
	}
	if outcome.TotalPaid != 4000 {
		t.Errorf("total = %v, want 4000", outcome.TotalPaid)
	}
	if outcome.Progress != 40 {
		t.Errorf("progress = %v, want 40", outcome.Progress)
	}
	if len(projectRepo.statusHistory) != 0 {
		t.Errorf("unexpected status writes: %v", projectRepo.statusHistory)
	}
	if len(updateRepo.updates) != 0 {
		t.Errorf("unexpected audit updates: %d", len(updateRepo.updates))
	}
}

func TestRecordPayment_ReachingBudgetFinishesProject(t *testing.T) {
	svc, _, projectRepo, updateRepo, project := newPaymentFixture()

	recordPayment(t, svc, project.ID, 4000)
	outcome := recordPayment(t, svc, project.ID, 6000)

	if !outcome.AutoTransitioned {
		t.Fatal("reaching the budget should auto-finish the project")
	}
	if outcome.ProjectStatus != domain.StatusFinished {
		t.Errorf("status = %q, want finished", outcome.ProjectStatus)
	}
	if outcome.Progress != 100 {
		t.Errorf("progress = %v, want 100", outcome.Progress)
	}

	stored, _ := projectRepo.FindByID(context.Background(), project.ID)
	if stored.Status != domain.StatusFinished {
		t.Errorf("stored status = %q, want finished", stored.Status)
	}

	if len(updateRepo.updates) != 1 {
		t.Fatalf("audit updates = %d, want 1", len(updateRepo.updates))
	}
	for _, u := range updateRepo.updates {
		if !strings.Contains(u.Description, "automatically marked as finished") {
			t.Errorf("unexpected audit text: %q", u.Description)
		}
	}
}

func TestRecordPayment_OverpaymentCapsProgress(t *testing.T) {
	svc, _, _, _, project := newPaymentFixture()

	outcome := recordPayment(t, svc, project.ID, 12000)

	if outcome.Progress != 100 {
		t.Errorf("progress = %v, want capped at 100", outcome.Progress)
	}
	if !outcome.AutoTransitioned {
		t.Error("overpayment should still finish the project")
	}
}

func TestRecordPayment_AlreadyFinishedDoesNotTransitionAgain(t *testing.T) {
	svc, _, projectRepo, updateRepo, project := newPaymentFixture()

	recordPayment(t, svc, project.ID, 10000)
	outcome := recordPayment(t, svc, project.ID, 500)

	if outcome.AutoTransitioned {
		t.Error("a payment on a finished project should not re-transition it")
	}
	if len(projectRepo.statusHistory) != 1 {
		t.Errorf("status writes = %v, want exactly one", projectRepo.statusHistory)
	}
	if len(updateRepo.updates) != 1 {
		t.Errorf("audit updates = %d, want 1", len(updateRepo.updates))
	}
}

func TestRecordPayment_InvalidInput(t *testing.T) {
	svc, _, _, _, project := newPaymentFixture()

	_, err := svc.RecordPayment(context.Background(), ports.RecordPaymentInput{
		ProjectID: project.ID, Amount: 0, PaymentDate: time.Now(), Method: domain.MethodCash,
	})
	if err == nil {
		t.Error("zero amount should be rejected")
	}

	_, err = svc.RecordPayment(context.Background(), ports.RecordPaymentInput{
		ProjectID: project.ID, Amount: 100, PaymentDate: time.Now(), Method: "crypto",
	})
	if err == nil {
		t.Error("unknown method should be rejected")
	}

	_, err = svc.RecordPayment(context.Background(), ports.RecordPaymentInput{
		ProjectID: uuid.New(), Amount: 100, PaymentDate: time.Now(), Method: domain.MethodCash,
	})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("unknown project error = %v, want ErrProjectNotFound", err)
	}
}

func TestRecordPayment_TransitionFailureDoesNotFailPayment(t *testing.T) {
	svc, paymentRepo, projectRepo, _, project := newPaymentFixture()
	projectRepo.updateStatusErr = errors.New("connection reset")

	outcome := recordPayment(t, svc, project.ID, 10000)

	if outcome.AutoTransitioned {
		t.Error("failed status write must not be reported as a transition")
	}
	if outcome.ProjectStatus != domain.StatusStarted {
		t.Errorf("status = %q, want the unchanged started", outcome.ProjectStatus)
	}
	if len(paymentRepo.payments) != 1 {
		t.Errorf("payments stored = %d, want 1", len(paymentRepo.payments))
	}
}

func TestRecordPayment_TotalFailureReportsEstimate(t *testing.T) {
	svc, paymentRepo, _, updateRepo, project := newPaymentFixture()
	paymentRepo.totalErr = errors.New("sum query failed")

	outcome := recordPayment(t, svc, project.ID, 10000)

	if outcome.AutoTransitioned {
		t.Error("transition check must be skipped when the total is unknown")
	}
	if outcome.TotalPaid != 10000 {
		t.Errorf("estimated total = %v, want the payment amount", outcome.TotalPaid)
	}
	if len(updateRepo.updates) != 0 {
		t.Errorf("unexpected audit updates: %d", len(updateRepo.updates))
	}
}

func TestDeletePayment_BelowBudgetRevertsFinishedProject(t *testing.T) {
	svc, _, projectRepo, updateRepo, project := newPaymentFixture()

	recordPayment(t, svc, project.ID, 4000)
	second := recordPayment(t, svc, project.ID, 6000)

	outcome, err := svc.DeletePayment(context.Background(), second.Payment.ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}

	if !outcome.AutoTransitioned {
		t.Fatal("dropping below the budget should revert the project")
	}
	if outcome.ProjectStatus != domain.StatusStarted {
		t.Errorf("status = %q, want started", outcome.ProjectStatus)
	}
	if outcome.TotalPaid != 4000 {
		t.Errorf("total = %v, want 4000", outcome.TotalPaid)
	}

	stored, _ := projectRepo.FindByID(context.Background(), project.ID)
	if stored.Status != domain.StatusStarted {
		t.Errorf("stored status = %q, want started", stored.Status)
	}

	reverted := false
	for _, u := range updateRepo.updates {
		if strings.Contains(u.Description, "automatically reverted to started") {
			reverted = true
		}
	}
	if !reverted {
		t.Error("missing reversion audit update")
	}
}

func TestDeletePayment_StillCoveredDoesNotRevert(t *testing.T) {
	svc, _, _, _, project := newPaymentFixture()

	small := recordPayment(t, svc, project.ID, 2000)
	recordPayment(t, svc, project.ID, 10000)

	outcome, err := svc.DeletePayment(context.Background(), small.Payment.ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}

	if outcome.AutoTransitioned {
		t.Error("total still covers the budget, no reversion expected")
	}
	if outcome.ProjectStatus != domain.StatusFinished {
		t.Errorf("status = %q, want finished", outcome.ProjectStatus)
	}
}

func TestDeletePayment_UnknownPayment(t *testing.T) {
	svc, _, _, _, _ := newPaymentFixture()

	_, err := svc.DeletePayment(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Errorf("err = %v, want ErrPaymentNotFound", err)
	}
}

// Full lifecycle: a project collects partial payments, finishes when the
// budget is reached, and reverts when a payment is withdrawn.
func TestPaymentLifecycle(t *testing.T) {
	svc, _, projectRepo, _, project := newPaymentFixture()
	ctx := context.Background()

	first := recordPayment(t, svc, project.ID, 2500)
	if first.ProjectStatus != domain.StatusStarted || first.Progress != 25 {
		t.Fatalf("after 2500: status=%q progress=%v", first.ProjectStatus, first.Progress)
	}

	second := recordPayment(t, svc, project.ID, 2500)
	if second.ProjectStatus != domain.StatusStarted || second.Progress != 50 {
		t.Fatalf("after 5000: status=%q progress=%v", second.ProjectStatus, second.Progress)
	}

	final := recordPayment(t, svc, project.ID, 5000)
	if !final.AutoTransitioned || final.ProjectStatus != domain.StatusFinished {
		t.Fatalf("after 10000: status=%q transitioned=%v", final.ProjectStatus, final.AutoTransitioned)
	}

	outcome, err := svc.DeletePayment(ctx, final.Payment.ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if !outcome.AutoTransitioned || outcome.ProjectStatus != domain.StatusStarted {
		t.Fatalf("after delete: status=%q transitioned=%v", outcome.ProjectStatus, outcome.AutoTransitioned)
	}

	stored, _ := projectRepo.FindByID(ctx, project.ID)
	if stored.Status != domain.StatusStarted {
		t.Errorf("final stored status = %q, want started", stored.Status)
	}
}

// End-to-end flow across the services: client, project, full payment,
// auto-finish with audit update, then deletion and auto-reversion.
func TestEndToEnd_BudgetDrivenStatus(t *testing.T) {
	clientRepo := newStubClientRepo()
	projectRepo := newStubProjectRepo()
	paymentRepo := newStubPaymentRepo()
	updateRepo := newStubUpdateRepo()
	invoices := &stubInvoiceStore{}

	clients := NewClientService(clientRepo, zerolog.Nop())
	projects := NewProjectService(projectRepo, clientRepo, invoices, zerolog.Nop())
	payments := NewPaymentService(paymentRepo, projectRepo, updateRepo, zerolog.Nop())
	updates := NewUpdateService(updateRepo, projectRepo, zerolog.Nop())
	ctx := context.Background()

	acme, err := clients.CreateClient(ctx, ports.CreateClientInput{Name: "Acme", Email: "acme@test"})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	website, err := projects.CreateProject(ctx, ports.CreateProjectInput{
		ClientID: acme.ID,
		Title:    "Website",
		Deadline: time.Now().Add(60 * 24 * time.Hour),
		Budget:   10000,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if website.Status != domain.StatusStarted {
		t.Fatalf("new project status = %q", website.Status)
	}

	outcome, err := payments.RecordPayment(ctx, ports.RecordPaymentInput{
		ProjectID:   website.ID,
		Amount:      10000,
		PaymentDate: time.Now(),
		Method:      domain.MethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !outcome.AutoTransitioned || outcome.ProjectStatus != domain.StatusFinished {
		t.Fatalf("after full payment: status=%q transitioned=%v", outcome.ProjectStatus, outcome.AutoTransitioned)
	}

	notes, err := updates.ListUpdates(ctx, website.ID)
	if err != nil {
		t.Fatalf("ListUpdates: %v", err)
	}
	if len(notes) != 1 || !strings.Contains(notes[0].Description, "finished") {
		t.Fatalf("expected one auto-completion update, got %v", notes)
	}

	reverted, err := payments.DeletePayment(ctx, outcome.Payment.ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if !reverted.AutoTransitioned || reverted.ProjectStatus != domain.StatusStarted {
		t.Fatalf("after deletion: status=%q transitioned=%v", reverted.ProjectStatus, reverted.AutoTransitioned)
	}

	notes, err = updates.ListUpdates(ctx, website.ID)
	if err != nil {
		t.Fatalf("ListUpdates: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected a second reversion update, got %d", len(notes))
	}
}

func TestListPayments_PaginatesNewestFirst(t *testing.T) {
	svc, _, _, _, project := newPaymentFixture()

	for i := 0; i < 3; i++ {
		_, err := svc.RecordPayment(context.Background(), ports.RecordPaymentInput{
			ProjectID:   project.ID,
			Amount:      100,
			PaymentDate: time.Now().Add(time.Duration(i) * time.Hour),
			Method:      domain.MethodCheck,
		})
		if err != nil {
			t.Fatalf("RecordPayment: %v", err)
		}
	}

	result, err := svc.ListPayments(context.Background(), project.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if result.Total != 3 || len(result.Items) != 3 {
		t.Fatalf("total=%d items=%d, want 3 and 3", result.Total, len(result.Items))
	}
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].PaymentDate.After(result.Items[i-1].PaymentDate) {
			t.Error("payments not sorted newest first")
		}
	}
}
