package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients   map[uuid.UUID]*domain.Client
	createErr error
	deleteErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) FindWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return r.FindByID(ctx, id)
}

func (r *stubClientRepo) List(_ context.Context, filter ports.ListClientsFilter) ([]ports.ClientSummary, int64, error) {
	var items []ports.ClientSummary
	for _, c := range r.clients {
		items = append(items, ports.ClientSummary{Client: *c, ProjectCount: int64(len(c.Projects))})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Client.Name < items[j].Client.Name })
	total := int64(len(items))

	start := (filter.Page - 1) * filter.Limit
	if start > len(items) {
		start = len(items)
	}
	end := start + filter.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.clients, id)
	return nil
}

type stubProjectRepo struct {
	projects        map[uuid.UUID]*domain.Project
	updateStatusErr error
	statusHistory   []domain.ProjectStatus // statuses passed to UpdateStatus, in order
	invoiceURLs     map[uuid.UUID]string
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{
		projects:    make(map[uuid.UUID]*domain.Project),
		invoiceURLs: make(map[uuid.UUID]string),
	}
}

func (r *stubProjectRepo) put(p *domain.Project) {
	clone := *p
	r.projects[p.ID] = &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.put(p)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) FindDetail(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return r.FindByID(ctx, id)
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]ports.ProjectSummary, error) {
	var items []ports.ProjectSummary
	for _, p := range r.projects {
		if filter.ClientID != uuid.Nil && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		items = append(items, ports.ProjectSummary{Project: *p})
	}
	return items, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.put(p)
	return nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.Status = status
	r.statusHistory = append(r.statusHistory, status)
	return nil
}

func (r *stubProjectRepo) SetInvoiceURL(_ context.Context, id uuid.UUID, url string) error {
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.InvoiceURL = url
	r.invoiceURLs[id] = url
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubPaymentRepo struct {
	payments map[uuid.UUID]*domain.Payment
	totalErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*domain.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) ListByProject(_ context.Context, projectID uuid.UUID, page, limit int) ([]domain.Payment, int64, error) {
	var items []domain.Payment
	for _, p := range r.payments {
		if p.ProjectID == projectID {
			items = append(items, *p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PaymentDate.After(items[j].PaymentDate) })
	return items, int64(len(items)), nil
}

func (r *stubPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(r.payments, id)
	return nil
}

func (r *stubPaymentRepo) TotalForProject(_ context.Context, projectID uuid.UUID) (float64, error) {
	if r.totalErr != nil {
		return 0, r.totalErr
	}
	var total float64
	for _, p := range r.payments {
		if p.ProjectID == projectID {
			total += p.Amount
		}
	}
	return total, nil
}

type stubUpdateRepo struct {
	updates   map[uuid.UUID]*domain.ProjectUpdate
	createErr error
}

func newStubUpdateRepo() *stubUpdateRepo {
	return &stubUpdateRepo{updates: make(map[uuid.UUID]*domain.ProjectUpdate)}
}

func (r *stubUpdateRepo) Create(_ context.Context, u *domain.ProjectUpdate) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.updates[u.ID] = &clone
	return nil
}

func (r *stubUpdateRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.ProjectUpdate, error) {
	u, ok := r.updates[id]
	if !ok {
		return nil, domain.ErrUpdateNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUpdateRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]domain.ProjectUpdate, error) {
	var items []domain.ProjectUpdate
	for _, u := range r.updates {
		if u.ProjectID == projectID {
			items = append(items, *u)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *stubUpdateRepo) Update(_ context.Context, u *domain.ProjectUpdate) error {
	if _, ok := r.updates[u.ID]; !ok {
		return domain.ErrUpdateNotFound
	}
	clone := *u
	r.updates[u.ID] = &clone
	return nil
}

func (r *stubUpdateRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.updates[id]; !ok {
		return domain.ErrUpdateNotFound
	}
	delete(r.updates, id)
	return nil
}

// byProject mirrors the unique index on project_id.
type stubPortalRepo struct {
	byProject map[uuid.UUID]*domain.ClientPortal
}

func newStubPortalRepo() *stubPortalRepo {
	return &stubPortalRepo{byProject: make(map[uuid.UUID]*domain.ClientPortal)}
}

func (r *stubPortalRepo) Upsert(_ context.Context, p *domain.ClientPortal) error {
	clone := *p
	r.byProject[p.ProjectID] = &clone
	return nil
}

func (r *stubPortalRepo) FindByProject(_ context.Context, projectID uuid.UUID) (*domain.ClientPortal, error) {
	p, ok := r.byProject[projectID]
	if !ok {
		return nil, domain.ErrPortalNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPortalRepo) FindByToken(_ context.Context, token string) (*domain.ClientPortal, error) {
	for _, p := range r.byProject {
		if p.AccessToken == token {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPortalNotFound
}

func (r *stubPortalRepo) SetEnabled(_ context.Context, projectID uuid.UUID, enabled bool) error {
	p, ok := r.byProject[projectID]
	if !ok {
		return domain.ErrPortalNotFound
	}
	p.Enabled = enabled
	return nil
}

func (r *stubPortalRepo) Delete(_ context.Context, projectID uuid.UUID) error {
	if _, ok := r.byProject[projectID]; !ok {
		return domain.ErrPortalNotFound
	}
	delete(r.byProject, projectID)
	return nil
}

type stubTokenCache struct {
	entries map[string]uuid.UUID
	getErr  error
	hits    int
	misses  int
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{entries: make(map[string]uuid.UUID)}
}

func (c *stubTokenCache) GetProjectID(_ context.Context, token string) (uuid.UUID, bool, error) {
	if c.getErr != nil {
		return uuid.Nil, false, c.getErr
	}
	id, ok := c.entries[token]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return id, ok, nil
}

func (c *stubTokenCache) Set(_ context.Context, token string, projectID uuid.UUID) error {
	c.entries[token] = projectID
	return nil
}

func (c *stubTokenCache) Invalidate(_ context.Context, token string) error {
	delete(c.entries, token)
	return nil
}

type stubInvoiceStore struct {
	uploadErr error
	removeErr error
	uploaded  []string
	removed   []string
}

func (s *stubInvoiceStore) Upload(_ context.Context, projectID uuid.UUID, filename, _ string, _ int64, _ io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	url := fmt.Sprintf("http://files.local/invoices/%s/%s", projectID, filename)
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *stubInvoiceStore) Remove(_ context.Context, url string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, url)
	return nil
}

type stubAuthRepo struct {
	byUsername map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byUsername: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.byUsername[user.Username] = &clone
	return &clone, nil
}
