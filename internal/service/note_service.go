package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/domain"
	"github.com/spec-kit/notes-service/internal/events"
	"github.com/spec-kit/notes-service/internal/repository"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

// NoteService coordinates note workflows. The caller's tenant always comes
// from the verified principal; no method accepts a tenant from request data.
type NoteService struct {
	notes      repository.NoteRepository
	tenants    repository.TenantRepository
	dispatcher events.Dispatcher
}

// NoteDependencies bundles requirements for the note service.
type NoteDependencies struct {
	NoteRepo   repository.NoteRepository
	TenantRepo repository.TenantRepository
	Dispatcher events.Dispatcher
}

// NewNoteService constructs the service.
func NewNoteService(deps NoteDependencies) *NoteService {
	return &NoteService{
		notes:      deps.NoteRepo,
		tenants:    deps.TenantRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns the caller's tenant notes, newest first.
func (s *NoteService) List(ctx context.Context, principal *auth.Principal) ([]domain.Note, error) {
	return s.notes.ListByTenant(ctx, principal.TenantID)
}

// Create admits a new note. The tenant's plan is re-read from the store on
// every call; under FREE the current note count gates admission. The
// count-then-create pair is not serialized, so two concurrent creations can
// both pass the gate at count=2 and overshoot the ceiling by one. The limit
// is advisory under concurrency.
func (s *NoteService) Create(ctx context.Context, principal *auth.Principal, title, content string) (*domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewTitleRequired()
	}

	tenant, err := s.tenants.GetByID(ctx, principal.TenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTenantNotFound()
		}
		return nil, err
	}

	if tenant.Plan == domain.PlanFree {
		count, err := s.notes.CountByTenant(ctx, principal.TenantID)
		if err != nil {
			return nil, err
		}
		if count >= domain.FreePlanNoteLimit {
			return nil, apperrors.NewQuotaExceeded(domain.FreePlanNoteLimit)
		}
	}

	note := &domain.Note{
		Title:    title,
		Content:  content,
		TenantID: principal.TenantID,
		OwnerID:  principal.UserID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventNoteCreated,
		TenantID:  principal.TenantID,
		ActorID:   principal.UserID,
		Timestamp: time.Now(),
		Payload:   events.NoteCreatedPayload{NoteID: note.ID, Title: note.Title},
	})
	return note, nil
}

// Get returns a note owned by the caller's tenant. A note that exists under
// another tenant yields the same not-found error as a note that does not
// exist at all.
func (s *NoteService) Get(ctx context.Context, principal *auth.Principal, id string) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Note")
		}
		return nil, err
	}
	return note, nil
}

// Update rewrites title and content of a note in the caller's tenant.
func (s *NoteService) Update(ctx context.Context, principal *auth.Principal, id, title, content string) (*domain.Note, error) {
	note, err := s.notes.Update(ctx, principal.TenantID, id, title, content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Note")
		}
		return nil, err
	}
	return note, nil
}

// Delete removes a note in the caller's tenant. Deleting a note that is
// absent, or held by another tenant, is a silent no-op.
func (s *NoteService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	deleted, err := s.notes.Delete(ctx, principal.TenantID, id)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.publish(ctx, events.Event{
			Type:      events.EventNoteDeleted,
			TenantID:  principal.TenantID,
			ActorID:   principal.UserID,
			Timestamp: time.Now(),
			Payload:   events.NoteDeletedPayload{NoteID: id},
		})
	}
	return nil
}

func (s *NoteService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
