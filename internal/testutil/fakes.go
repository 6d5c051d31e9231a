// Package testutil provides in-memory repository implementations for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/notes-service/internal/domain"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *UserStore) ListByTenant(_ context.Context, tenantID string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []domain.User
	for _, user := range s.users {
		if user.TenantID == tenantID {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// TenantStore is an in-memory repository.TenantRepository.
type TenantStore struct {
	mu      sync.Mutex
	tenants map[string]*domain.Tenant
}

// NewTenantStore creates an empty store.
func NewTenantStore() *TenantStore {
	return &TenantStore{tenants: make(map[string]*domain.Tenant)}
}

func (s *TenantStore) Create(_ context.Context, tenant *domain.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	tenant.CreatedAt = time.Now()
	copied := *tenant
	s.tenants[tenant.ID] = &copied
	return nil
}

func (s *TenantStore) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *tenant
	return &copied, nil
}

func (s *TenantStore) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tenant := range s.tenants {
		if tenant.Slug == slug {
			copied := *tenant
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *TenantStore) UpdatePlan(_ context.Context, id string, plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tenant.Plan = plan
	return nil
}

// NoteStore is an in-memory repository.NoteRepository. Like the SQL
// implementation, every lookup carries the tenant predicate.
type NoteStore struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
	seq   int
}

// NewNoteStore creates an empty store.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]*domain.Note)}
}

func (s *NoteStore) Create(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	s.seq++
	// Monotonic timestamps so newest-first ordering is deterministic.
	note.CreatedAt = time.Unix(int64(s.seq), 0)
	note.UpdatedAt = note.CreatedAt
	copied := *note
	s.notes[note.ID] = &copied
	return nil
}

func (s *NoteStore) GetByID(_ context.Context, tenantID, id string) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	copied := *note
	return &copied, nil
}

func (s *NoteStore) ListByTenant(_ context.Context, tenantID string) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var notes []domain.Note
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			notes = append(notes, *note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

func (s *NoteStore) Update(_ context.Context, tenantID, id, title, content string) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()
	copied := *note
	return &copied, nil
}

func (s *NoteStore) Delete(_ context.Context, tenantID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return 0, nil
	}
	delete(s.notes, id)
	return 1, nil
}

func (s *NoteStore) CountByTenant(_ context.Context, tenantID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}
