package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/domain"
	"github.com/spec-kit/notes-service/internal/service"
	"github.com/spec-kit/notes-service/internal/testutil"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

type noteFixture struct {
	svc     *service.NoteService
	tenants *testutil.TenantStore
	notes   *testutil.NoteStore
	acme    *auth.Principal
	globex  *auth.Principal
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()
	ctx := context.Background()

	tenants := testutil.NewTenantStore()
	notes := testutil.NewNoteStore()

	acme := &domain.Tenant{Name: "Acme", Slug: "acme", Plan: domain.PlanFree}
	globex := &domain.Tenant{Name: "Globex", Slug: "globex", Plan: domain.PlanFree}
	for _, tenant := range []*domain.Tenant{acme, globex} {
		if err := tenants.Create(ctx, tenant); err != nil {
			t.Fatalf("create tenant: %v", err)
		}
	}

	svc := service.NewNoteService(service.NoteDependencies{
		NoteRepo:   notes,
		TenantRepo: tenants,
	})

	return &noteFixture{
		svc:     svc,
		tenants: tenants,
		notes:   notes,
		acme:    &auth.Principal{UserID: "user-acme", TenantID: acme.ID, Role: domain.RoleMember},
		globex:  &auth.Principal{UserID: "user-globex", TenantID: globex.ID, Role: domain.RoleMember},
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return de.Code
}

func TestCreateRequiresTitle(t *testing.T) {
	fx := newNoteFixture(t)

	for _, title := range []string{"", "   "} {
		_, err := fx.svc.Create(context.Background(), fx.acme, title, "content")
		if err == nil {
			t.Fatalf("Create(%q) succeeded, want TITLE_REQUIRED", title)
		}
		if code := errCode(t, err); code != "TITLE_REQUIRED" {
			t.Errorf("Create(%q) code = %s, want TITLE_REQUIRED", title, code)
		}
	}

	if count, _ := fx.notes.CountByTenant(context.Background(), fx.acme.TenantID); count != 0 {
		t.Errorf("store touched despite validation failure: %d notes", count)
	}
}

func TestFreePlanQuota(t *testing.T) {
	fx := newNoteFixture(t)
	ctx := context.Background()

	// Two existing notes: the third creation is admitted and reaches the cap.
	for i := 0; i < 2; i++ {
		if _, err := fx.svc.Create(ctx, fx.acme, fmt.Sprintf("note %d", i), ""); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	if _, err := fx.svc.Create(ctx, fx.acme, "note 2", ""); err != nil {
		t.Fatalf("creation at count=2 should succeed: %v", err)
	}
	if count, _ := fx.notes.CountByTenant(ctx, fx.acme.TenantID); count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	// At the cap, a fourth is rejected and nothing is written.
	_, err := fx.svc.Create(ctx, fx.acme, "note 3", "")
	if err == nil {
		t.Fatal("creation at count=3 succeeded, want QUOTA_EXCEEDED")
	}
	if code := errCode(t, err); code != "QUOTA_EXCEEDED" {
		t.Errorf("code = %s, want QUOTA_EXCEEDED", code)
	}
	if count, _ := fx.notes.CountByTenant(ctx, fx.acme.TenantID); count != 3 {
		t.Errorf("count = %d after rejection, want 3", count)
	}

	// The quota is per tenant: the other tenant is unaffected.
	if _, err := fx.svc.Create(ctx, fx.globex, "globex note", ""); err != nil {
		t.Errorf("other tenant create: %v", err)
	}
}

func TestProPlanHasNoCeiling(t *testing.T) {
	fx := newNoteFixture(t)
	ctx := context.Background()

	if err := fx.tenants.UpdatePlan(ctx, fx.acme.TenantID, domain.PlanPro); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	for i := 0; i < 10; i++ {
		if _, err := fx.svc.Create(ctx, fx.acme, fmt.Sprintf("note %d", i), ""); err != nil {
			t.Fatalf("Create #%d on PRO: %v", i, err)
		}
	}
}

func TestCreateUnknownTenant(t *testing.T) {
	fx := newNoteFixture(t)

	ghost := &auth.Principal{UserID: "u", TenantID: "no-such-tenant", Role: domain.RoleMember}
	_, err := fx.svc.Create(context.Background(), ghost, "title", "")
	if err == nil {
		t.Fatal("Create succeeded for unknown tenant")
	}
	if code := errCode(t, err); code != "TENANT_NOT_FOUND" {
		t.Errorf("code = %s, want TENANT_NOT_FOUND", code)
	}
}

func TestTenantIsolation(t *testing.T) {
	fx := newNoteFixture(t)
	ctx := context.Background()

	note, err := fx.svc.Create(ctx, fx.acme, "acme secret", "body")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Reads, updates and deletes through the other tenant's context behave as
	// if the note does not exist.
	if _, err := fx.svc.Get(ctx, fx.globex, note.ID); err == nil {
		t.Error("cross-tenant Get succeeded")
	} else if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("cross-tenant Get code = %s, want NOT_FOUND", code)
	}

	if _, err := fx.svc.Update(ctx, fx.globex, note.ID, "hijacked", ""); err == nil {
		t.Error("cross-tenant Update succeeded")
	} else if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("cross-tenant Update code = %s, want NOT_FOUND", code)
	}

	if err := fx.svc.Delete(ctx, fx.globex, note.ID); err != nil {
		t.Errorf("cross-tenant Delete errored: %v", err)
	}

	// The note is intact for its owner.
	got, err := fx.svc.Get(ctx, fx.acme, note.ID)
	if err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if got.Title != "acme secret" {
		t.Errorf("title = %q after cross-tenant update attempt", got.Title)
	}
}

func TestListNewestFirst(t *testing.T) {
	fx := newNoteFixture(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := fx.svc.Create(ctx, fx.acme, title, ""); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	notes, err := fx.svc.List(ctx, fx.acme)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("len = %d, want 3", len(notes))
	}
	if notes[0].Title != "third" || notes[2].Title != "first" {
		t.Errorf("order = [%s %s %s], want newest first", notes[0].Title, notes[1].Title, notes[2].Title)
	}
}

func TestDeleteIsSilentNoOp(t *testing.T) {
	fx := newNoteFixture(t)

	if err := fx.svc.Delete(context.Background(), fx.acme, "no-such-note"); err != nil {
		t.Errorf("Delete of absent note errored: %v", err)
	}
}

func TestUpdateRewritesNote(t *testing.T) {
	fx := newNoteFixture(t)
	ctx := context.Background()

	note, err := fx.svc.Create(ctx, fx.acme, "before", "old")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := fx.svc.Update(ctx, fx.acme, note.ID, "after", "new")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "after" || updated.Content != "new" {
		t.Errorf("updated = %q/%q, want after/new", updated.Title, updated.Content)
	}
}
