package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/domain"
	"github.com/spec-kit/notes-service/internal/events"
	"github.com/spec-kit/notes-service/internal/persistence"
	"github.com/spec-kit/notes-service/internal/repository"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

const slugCacheTTL = 10 * time.Minute

// TenantService drives plan transitions and tenant-level reads. Plan checks
// always hit the store; only the immutable slug-to-id mapping goes through
// the redis cache.
type TenantService struct {
	tenants    repository.TenantRepository
	users      repository.UserRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
}

// TenantDependencies bundles requirements for the tenant service.
type TenantDependencies struct {
	TenantRepo repository.TenantRepository
	UserRepo   repository.UserRepository
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
}

// NewTenantService constructs the service.
func NewTenantService(deps TenantDependencies) *TenantService {
	return &TenantService{
		tenants:    deps.TenantRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Upgrade moves the caller's tenant from FREE to PRO. The route carries the
// ADMIN role gate; this method assumes it already passed.
func (s *TenantService) Upgrade(ctx context.Context, principal *auth.Principal) (*domain.Tenant, error) {
	tenant, err := s.loadTenant(ctx, principal.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Plan == domain.PlanPro {
		return nil, apperrors.NewAlreadyOnPlan(string(domain.PlanPro))
	}
	return s.transition(ctx, principal, tenant, domain.PlanPro)
}

// Downgrade moves the caller's tenant to FREE. Downgrading an already-FREE
// tenant succeeds without error.
func (s *TenantService) Downgrade(ctx context.Context, principal *auth.Principal) (*domain.Tenant, error) {
	tenant, err := s.loadTenant(ctx, principal.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Plan == domain.PlanFree {
		return tenant, nil
	}
	return s.transition(ctx, principal, tenant, domain.PlanFree)
}

// Meta returns name, slug and current plan of the caller's tenant.
func (s *TenantService) Meta(ctx context.Context, principal *auth.Principal) (*domain.Tenant, error) {
	return s.loadTenant(ctx, principal.TenantID)
}

// Users lists the members of a tenant. With an empty slug it lists the
// caller's own tenant. A non-empty slug is the one sanctioned crossing of the
// tenant boundary: it resolves any tenant by its public handle.
func (s *TenantService) Users(ctx context.Context, principal *auth.Principal, slug string) ([]domain.User, error) {
	tenantID := principal.TenantID
	if slug != "" {
		resolved, err := s.resolveSlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		tenantID = resolved
	}

	users, err := s.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *TenantService) loadTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTenantNotFound()
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) transition(ctx context.Context, principal *auth.Principal, tenant *domain.Tenant, plan domain.Plan) (*domain.Tenant, error) {
	if err := s.tenants.UpdatePlan(ctx, tenant.ID, plan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTenantNotFound()
		}
		return nil, err
	}

	oldPlan := tenant.Plan
	tenant.Plan = plan

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventPlanChanged,
			TenantID:  tenant.ID,
			ActorID:   principal.UserID,
			Timestamp: time.Now(),
			Payload:   events.PlanChangedPayload{OldPlan: oldPlan, NewPlan: plan},
		})
	}
	return tenant, nil
}

// resolveSlug maps a public slug to a tenant ID. Slugs never change, so the
// mapping is safe to cache; the tenant row itself (plan included) is not.
func (s *TenantService) resolveSlug(ctx context.Context, slug string) (string, error) {
	cacheKey := "tenant:slug:" + slug
	if id := s.cache.CacheGet(ctx, cacheKey); id != "" {
		return id, nil
	}

	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewTenantNotFound()
		}
		return "", err
	}

	s.cache.CacheSet(ctx, cacheKey, tenant.ID, slugCacheTTL)
	return tenant.ID, nil
}
