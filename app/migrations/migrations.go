// Package migrations orders the per-module bun migration sets and runs them together.
package migrations

import (
	"context"
	"fmt"

	auctionmigrations "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories/migrations"
	authmigrations "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/repositories/migrations"
	imagemigrations "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories/migrations"
	programmigrations "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories/migrations"
	registrationmigrations "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories/migrations"
	seatingmigrations "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Set is one module's migrations.
type Set struct {
	Module     string
	Migrations *migrate.Migrations
}

// Sets returns every module's migrations in dependency order: seats reference
// registrations, so registration runs before seating.
func Sets() []Set {
	return []Set{
		{Module: "auth", Migrations: authmigrations.Migrations},
		{Module: "registration", Migrations: registrationmigrations.Migrations},
		{Module: "seating", Migrations: seatingmigrations.Migrations},
		{Module: "auction", Migrations: auctionmigrations.Migrations},
		{Module: "program", Migrations: programmigrations.Migrations},
		{Module: "image", Migrations: imagemigrations.Migrations},
	}
}

// NamedMigrator pairs a module name with its migrator.
type NamedMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators builds one migrator per module, in dependency order.
func Migrators(db *bun.DB) []NamedMigrator {
	sets := Sets()
	out := make([]NamedMigrator, 0, len(sets))
	for _, s := range sets {
		out = append(out, NamedMigrator{Module: s.Module, Migrator: migrate.NewMigrator(db, s.Migrations)})
	}
	return out
}

// Init creates the migration bookkeeping tables.
func Init(ctx context.Context, db *bun.DB) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", m.Module, err)
		}
	}
	return nil
}

// Up initializes bookkeeping and applies all pending migrations, module by module.
func Up(ctx context.Context, db *bun.DB) ([]*migrate.MigrationGroup, error) {
	if err := Init(ctx, db); err != nil {
		return nil, err
	}
	var groups []*migrate.MigrationGroup
	for _, m := range Migrators(db) {
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return groups, fmt.Errorf("failed to migrate %s: %w", m.Module, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Down rolls back the last migration group of every module in reverse dependency order.
func Down(ctx context.Context, db *bun.DB) ([]*migrate.MigrationGroup, error) {
	ms := Migrators(db)
	var groups []*migrate.MigrationGroup
	for i := len(ms) - 1; i >= 0; i-- {
		group, err := ms[i].Migrator.Rollback(ctx)
		if err != nil {
			return groups, fmt.Errorf("failed to roll back %s: %w", ms[i].Module, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}
