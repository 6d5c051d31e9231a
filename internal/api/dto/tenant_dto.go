package dto

// TenantMetaResponse exposes the public view of a tenant.
type TenantMetaResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Plan string `json:"plan"`
}

// PlanResponse reports the plan after a transition.
type PlanResponse struct {
	Message string `json:"message"`
	Plan    string `json:"plan"`
}
