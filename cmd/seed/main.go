package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/config"
	"github.com/spec-kit/notes-service/internal/domain"
	"github.com/spec-kit/notes-service/internal/observability"
	"github.com/spec-kit/notes-service/internal/persistence"
	"github.com/spec-kit/notes-service/internal/repository"
)

// Seeds two demo tenants on the FREE plan with an admin and a member each.
// All accounts use the password "password". Existing rows are wiped first,
// so this is strictly a development fixture.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if _, err := pool.Exec(ctx, `TRUNCATE notes, users, tenants`); err != nil {
		logger.Fatal("failed to truncate", zap.Error(err))
	}

	tenantRepo := repository.NewTenantRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	passwordHash, err := auth.HashPassword("password", cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	for _, fixture := range []struct {
		name string
		slug string
	}{
		{name: "Acme", slug: "acme"},
		{name: "Globex", slug: "globex"},
	} {
		tenant := &domain.Tenant{Name: fixture.name, Slug: fixture.slug, Plan: domain.PlanFree}
		if err := tenantRepo.Create(ctx, tenant); err != nil {
			logger.Fatal("failed to create tenant", zap.String("slug", fixture.slug), zap.Error(err))
		}

		admin := &domain.User{
			Email:        "admin@" + fixture.slug + ".test",
			PasswordHash: passwordHash,
			Name:         fixture.name + " Admin",
			Role:         domain.RoleAdmin,
			TenantID:     tenant.ID,
		}
		member := &domain.User{
			Email:        "user@" + fixture.slug + ".test",
			PasswordHash: passwordHash,
			Name:         fixture.name + " User",
			Role:         domain.RoleMember,
			TenantID:     tenant.ID,
		}
		for _, user := range []*domain.User{admin, member} {
			if err := userRepo.Create(ctx, user); err != nil {
				logger.Fatal("failed to create user", zap.String("email", user.Email), zap.Error(err))
			}
		}

		logger.Info("seeded tenant", zap.String("slug", tenant.Slug), zap.String("id", tenant.ID))
	}

	logger.Info("seed finished")
}
