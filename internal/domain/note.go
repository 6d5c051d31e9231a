package domain

import "time"

// Note is the counted, tenant-owned resource. TenantID always equals the
// tenant of the authenticated caller that created it.
type Note struct {
	ID        string
	Title     string
	Content   string
	TenantID  string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
