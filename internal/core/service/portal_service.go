package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/ports"
)

type PortalService struct {
	repo        ports.PortalRepository
	projectRepo ports.ProjectRepository
	clientRepo  ports.ClientRepository
	cache       ports.PortalTokenCache
	publicURL   string
	logger      zerolog.Logger
}

func NewPortalService(
	repo ports.PortalRepository,
	projectRepo ports.ProjectRepository,
	clientRepo ports.ClientRepository,
	cache ports.PortalTokenCache,
	publicURL string,
	logger zerolog.Logger,
) *PortalService {
	return &PortalService{
		repo:        repo,
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		cache:       cache,
		publicURL:   strings.TrimRight(publicURL, "/"),
		logger:      logger,
	}
}

// CreatePortal creates the project's portal. When one already exists its
// token is replaced and the portal is re-enabled (implicit rotation).
func (s *PortalService) CreatePortal(ctx context.Context, projectID uuid.UUID) (*ports.PortalInfo, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	var oldToken string
	if existing, err := s.repo.FindByProject(ctx, projectID); err == nil {
		oldToken = existing.AccessToken
	}

	portal := &domain.ClientPortal{
		ID:          uuid.New(),
		ProjectID:   projectID,
		AccessToken: generateAccessToken(),
		Enabled:     true,
	}
	if err := s.repo.Upsert(ctx, portal); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to create portal")
		return nil, fmt.Errorf("create portal: %w", err)
	}

	if oldToken != "" {
		s.invalidateToken(ctx, oldToken)
	}

	s.logger.Info().Str("project_id", projectID.String()).Msg("portal created")
	return s.portalInfo(portal), nil
}

// GetPortal returns the project's portal management view.
func (s *PortalService) GetPortal(ctx context.Context, projectID uuid.UUID) (*ports.PortalInfo, error) {
	portal, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.portalInfo(portal), nil
}

// SetPortalEnabled toggles portal access. The token is untouched, so
// re-enabling restores the previously shared link.
func (s *PortalService) SetPortalEnabled(ctx context.Context, projectID uuid.UUID, enabled bool) (*ports.PortalInfo, error) {
	portal, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetEnabled(ctx, projectID, enabled); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to toggle portal")
		return nil, fmt.Errorf("toggle portal: %w", err)
	}
	portal.Enabled = enabled

	s.logger.Info().Str("project_id", projectID.String()).Bool("enabled", enabled).Msg("portal toggled")
	return s.portalInfo(portal), nil
}

// DeletePortal removes the portal permanently and immediately.
func (s *PortalService) DeletePortal(ctx context.Context, projectID uuid.UUID) error {
	portal, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID.String()).Msg("failed to delete portal")
		return fmt.Errorf("delete portal: %w", err)
	}

	s.invalidateToken(ctx, portal.AccessToken)
	s.logger.Info().Str("project_id", projectID.String()).Msg("portal deleted")
	return nil
}

// GetPortalByToken resolves a token to the read-only project view. Unknown
// and disabled tokens are indistinguishable to the caller. The enabled flag
// is always re-checked against the store so a disable takes effect
// immediately, regardless of any cached token mapping.
func (s *PortalService) GetPortalByToken(ctx context.Context, token string) (*ports.PortalView, error) {
	portal, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !portal.Enabled {
		return nil, domain.ErrPortalNotFound
	}

	project, err := s.projectRepo.FindDetail(ctx, portal.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, domain.ErrPortalNotFound
		}
		return nil, err
	}

	var total float64
	for _, p := range project.Payments {
		total += p.Amount
	}

	return &ports.PortalView{
		ProjectTitle: project.Title,
		Description:  project.Description,
		Status:       project.Status,
		Budget:       project.Budget,
		TotalPaid:    total,
		Progress:     domain.PaymentProgress(total, project.Budget),
		Completed:    domain.IsPaymentCompleted(total, project.Budget),
		Deadline:     project.Deadline,
		DeadlineInfo: domain.ClassifyDeadline(project.Deadline, time.Now().UTC()),
		Payments:     project.Payments,
		Updates:      project.Updates,
	}, nil
}

// resolveToken finds the portal row for a token, trying the cache first and
// degrading to a store lookup when the cache misbehaves.
func (s *PortalService) resolveToken(ctx context.Context, token string) (*domain.ClientPortal, error) {
	if s.cache != nil {
		projectID, ok, err := s.cache.GetProjectID(ctx, token)
		if err != nil {
			s.logger.Warn().Err(err).Msg("portal cache lookup failed, falling back to store")
		} else if ok {
			portal, err := s.repo.FindByProject(ctx, projectID)
			// A stale mapping (rotated or deleted portal) falls through to
			// the token lookup below.
			if err == nil && portal.AccessToken == token {
				return portal, nil
			}
			s.invalidateToken(ctx, token)
		}
	}

	portal, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, token, portal.ProjectID); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache portal token")
		}
	}
	return portal, nil
}

func (s *PortalService) invalidateToken(ctx context.Context, token string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate portal token cache")
	}
}

func (s *PortalService) portalInfo(portal *domain.ClientPortal) *ports.PortalInfo {
	return &ports.PortalInfo{
		Portal: *portal,
		URL:    fmt.Sprintf("%s/client-portal/%s", s.publicURL, portal.AccessToken),
	}
}

// generateAccessToken builds an opaque token from two random substrings and
// a timestamp-derived suffix. Resistant to casual guessing; not a
// cryptographic credential.
func generateAccessToken() string {
	return randomHex(8) + randomHex(8) + strconv.FormatInt(time.Now().UnixNano(), 36)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from current nanoseconds
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
