package domain

import "time"

// Plan is the tenant subscription level. FREE tenants are capped at
// FreePlanNoteLimit notes; PRO tenants have no ceiling.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// FreePlanNoteLimit is the maximum number of notes a FREE tenant may hold at
// the moment a creation is admitted.
const FreePlanNoteLimit = 3

// Tenant is an isolated workspace. Slug is the public, URL-safe handle; ID is
// internal. Plan is the only field that changes after creation.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Plan      Plan
	CreatedAt time.Time
}
