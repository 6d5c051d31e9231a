package service_test

import (
	"context"
	"testing"

	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/domain"
	"github.com/spec-kit/notes-service/internal/service"
	"github.com/spec-kit/notes-service/internal/testutil"
)

type tenantFixture struct {
	svc    *service.TenantService
	acme   *domain.Tenant
	globex *domain.Tenant
	admin  *auth.Principal
}

func newTenantFixture(t *testing.T) *tenantFixture {
	t.Helper()
	ctx := context.Background()

	tenants := testutil.NewTenantStore()
	users := testutil.NewUserStore()

	acme := &domain.Tenant{Name: "Acme", Slug: "acme", Plan: domain.PlanFree}
	globex := &domain.Tenant{Name: "Globex", Slug: "globex", Plan: domain.PlanFree}
	for _, tenant := range []*domain.Tenant{acme, globex} {
		if err := tenants.Create(ctx, tenant); err != nil {
			t.Fatalf("create tenant: %v", err)
		}
	}
	for _, user := range []*domain.User{
		{Email: "admin@acme.test", Role: domain.RoleAdmin, TenantID: acme.ID},
		{Email: "user@acme.test", Role: domain.RoleMember, TenantID: acme.ID},
		{Email: "admin@globex.test", Role: domain.RoleAdmin, TenantID: globex.ID},
	} {
		if err := users.Create(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	svc := service.NewTenantService(service.TenantDependencies{
		TenantRepo: tenants,
		UserRepo:   users,
	})
	return &tenantFixture{
		svc:    svc,
		acme:   acme,
		globex: globex,
		admin:  &auth.Principal{UserID: "admin", TenantID: acme.ID, Role: domain.RoleAdmin},
	}
}

func TestUpgradeFreeToPro(t *testing.T) {
	fx := newTenantFixture(t)
	ctx := context.Background()

	tenant, err := fx.svc.Upgrade(ctx, fx.admin)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if tenant.Plan != domain.PlanPro {
		t.Errorf("plan = %s, want PRO", tenant.Plan)
	}

	// A second upgrade is rejected, not silently absorbed.
	_, err = fx.svc.Upgrade(ctx, fx.admin)
	if err == nil {
		t.Fatal("second Upgrade succeeded, want ALREADY_ON_PLAN")
	}
	if code := errCode(t, err); code != "ALREADY_ON_PLAN" {
		t.Errorf("code = %s, want ALREADY_ON_PLAN", code)
	}
}

func TestDowngradeIsIdempotent(t *testing.T) {
	fx := newTenantFixture(t)
	ctx := context.Background()

	// Already FREE: succeeds without error.
	tenant, err := fx.svc.Downgrade(ctx, fx.admin)
	if err != nil {
		t.Fatalf("Downgrade on FREE: %v", err)
	}
	if tenant.Plan != domain.PlanFree {
		t.Errorf("plan = %s, want FREE", tenant.Plan)
	}

	if _, err := fx.svc.Upgrade(ctx, fx.admin); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	tenant, err = fx.svc.Downgrade(ctx, fx.admin)
	if err != nil {
		t.Fatalf("Downgrade on PRO: %v", err)
	}
	if tenant.Plan != domain.PlanFree {
		t.Errorf("plan = %s after downgrade, want FREE", tenant.Plan)
	}
}

func TestPlanChangeUnknownTenant(t *testing.T) {
	fx := newTenantFixture(t)
	ghost := &auth.Principal{UserID: "u", TenantID: "no-such-tenant", Role: domain.RoleAdmin}

	if _, err := fx.svc.Upgrade(context.Background(), ghost); err == nil {
		t.Error("Upgrade for unknown tenant succeeded")
	} else if code := errCode(t, err); code != "TENANT_NOT_FOUND" {
		t.Errorf("Upgrade code = %s, want TENANT_NOT_FOUND", code)
	}

	if _, err := fx.svc.Downgrade(context.Background(), ghost); err == nil {
		t.Error("Downgrade for unknown tenant succeeded")
	} else if code := errCode(t, err); code != "TENANT_NOT_FOUND" {
		t.Errorf("Downgrade code = %s, want TENANT_NOT_FOUND", code)
	}
}

func TestMeta(t *testing.T) {
	fx := newTenantFixture(t)

	tenant, err := fx.svc.Meta(context.Background(), fx.admin)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if tenant.Name != "Acme" || tenant.Slug != "acme" || tenant.Plan != domain.PlanFree {
		t.Errorf("meta = %s/%s/%s", tenant.Name, tenant.Slug, tenant.Plan)
	}
}

func TestUsersDefaultsToOwnTenant(t *testing.T) {
	fx := newTenantFixture(t)

	users, err := fx.svc.Users(context.Background(), fx.admin, "")
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	for _, user := range users {
		if user.TenantID != fx.acme.ID {
			t.Errorf("user %s from tenant %s, want %s", user.Email, user.TenantID, fx.acme.ID)
		}
	}
}

func TestUsersBySlugCrossesTenant(t *testing.T) {
	fx := newTenantFixture(t)

	// The public-slug lookup is the one sanctioned cross-tenant read.
	users, err := fx.svc.Users(context.Background(), fx.admin, "globex")
	if err != nil {
		t.Fatalf("Users(globex): %v", err)
	}
	if len(users) != 1 || users[0].Email != "admin@globex.test" {
		t.Fatalf("unexpected roster: %+v", users)
	}
}

func TestUsersUnknownSlug(t *testing.T) {
	fx := newTenantFixture(t)

	_, err := fx.svc.Users(context.Background(), fx.admin, "no-such-slug")
	if err == nil {
		t.Fatal("Users(no-such-slug) succeeded")
	}
	if code := errCode(t, err); code != "TENANT_NOT_FOUND" {
		t.Errorf("code = %s, want TENANT_NOT_FOUND", code)
	}
}
