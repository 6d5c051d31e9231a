package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-service/internal/api/dto"
	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/service"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

// TenantsHandler manages tenant endpoints. Plan transitions additionally sit
// behind the ADMIN role gate, wired in the router.
type TenantsHandler struct {
	service *service.TenantService
}

// NewTenantsHandler constructs handler.
func NewTenantsHandler(tenantService *service.TenantService) *TenantsHandler {
	return &TenantsHandler{service: tenantService}
}

// Upgrade POST /tenants/upgrade.
func (h *TenantsHandler) Upgrade(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tenant, err := h.service.Upgrade(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PlanResponse{
		Message: "Tenant upgraded to PRO plan",
		Plan:    string(tenant.Plan),
	}})
}

// Downgrade POST /tenants/downgrade.
func (h *TenantsHandler) Downgrade(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tenant, err := h.service.Downgrade(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PlanResponse{
		Message: "Tenant downgraded to FREE plan",
		Plan:    string(tenant.Plan),
	}})
}

// Meta GET /tenants/meta.
func (h *TenantsHandler) Meta(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tenant, err := h.service.Meta(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TenantMetaResponse{
		Name: tenant.Name,
		Slug: tenant.Slug,
		Plan: string(tenant.Plan),
	}})
}

// Users GET /tenants/users and GET /tenants/:slug/users. The slug variant is
// the single sanctioned cross-tenant read.
func (h *TenantsHandler) Users(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	users, err := h.service.Users(c.Context(), principal, c.Params("slug"))
	if err != nil {
		return err
	}

	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, userSummary(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
