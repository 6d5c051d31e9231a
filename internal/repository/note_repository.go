package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/notes-service/internal/domain"
)

// NoteRepository defines persistence access for notes. Every method takes the
// caller's tenant ID and bakes it into the SQL predicate, so a note belonging
// to another tenant is indistinguishable from a note that does not exist.
// There is no method that addresses a note by ID alone.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Note, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Note, error)
	Update(ctx context.Context, tenantID, id, title, content string) (*domain.Note, error)
	Delete(ctx context.Context, tenantID, id string) (int64, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository returns a Postgres-backed implementation.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO notes (title, content, tenant_id, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		note.Title,
		note.Content,
		note.TenantID,
		note.OwnerID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Note, error) {
	const query = `
        SELECT id, title, content, tenant_id, owner_id, created_at, updated_at
        FROM notes WHERE id=$1 AND tenant_id=$2`

	return r.scanOne(r.pool.QueryRow(ctx, query, id, tenantID))
}

func (r *noteRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Note, error) {
	const query = `
        SELECT id, title, content, tenant_id, owner_id, created_at, updated_at
        FROM notes WHERE tenant_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.TenantID,
			&note.OwnerID,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Update(ctx context.Context, tenantID, id, title, content string) (*domain.Note, error) {
	const query = `
        UPDATE notes SET title=$1, content=$2, updated_at=NOW()
        WHERE id=$3 AND tenant_id=$4
        RETURNING id, title, content, tenant_id, owner_id, created_at, updated_at`

	return r.scanOne(r.pool.QueryRow(ctx, query, title, content, id, tenantID))
}

func (r *noteRepository) Delete(ctx context.Context, tenantID, id string) (int64, error) {
	const query = `DELETE FROM notes WHERE id=$1 AND tenant_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *noteRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notes WHERE tenant_id=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepository) scanOne(row pgx.Row) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.TenantID,
		&note.OwnerID,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &note, nil
}
