package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Black-And-White-Club/gala-night/app"
	"github.com/Black-And-White-Club/gala-night/app/migrations"
	"github.com/Black-And-White-Club/gala-night/app/modules/sheets"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "gala",
		Usage: "gala night backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"GALA_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newSheetsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			obs, err := observability.Init(cfg.Observability)
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}

			application, err := app.New(ctx, cfg, obs, app.NewDB(cfg.Postgres.DSN))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer func() {
				if err := application.Close(); err != nil {
					obs.Logger.Error("Shutdown error", "error", err)
				}
			}()

			return application.Run(ctx)
		},
	}
}

func newMigrateCommand() *cli.Command {
	withDB := func(action func(c *cli.Context, cfg *config.Config, db *bun.DB) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			db := app.NewDB(cfg.Postgres.DSN)
			defer db.Close()
			return action(c, cfg, db)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withDB(func(c *cli.Context, _ *config.Config, db *bun.DB) error {
					for _, m := range migrations.Migrators(db) {
						fmt.Printf("Initializing migrations for module: %s\n", m.Module)
						if err := m.Migrator.Init(c.Context); err != nil {
							return fmt.Errorf("failed to init module %s: %w", m.Module, err)
						}
					}
					return nil
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withDB(func(c *cli.Context, cfg *config.Config, db *bun.DB) error {
					groups, err := migrations.Up(c.Context, db)
					if err != nil {
						return err
					}
					for i, m := range migrations.Sets() {
						if i >= len(groups) || groups[i].IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.Module)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.Module, groups[i])
						}
					}
					if cfg.Queue.Enabled {
						return migrateQueue(c.Context, cfg.Postgres.DSN)
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: withDB(func(c *cli.Context, _ *config.Config, db *bun.DB) error {
					groups, err := migrations.Down(c.Context, db)
					if err != nil {
						return err
					}
					for _, group := range groups {
						if group.IsZero() {
							continue
						}
						fmt.Printf("Rolled back %s\n", group)
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withDB(func(c *cli.Context, _ *config.Config, db *bun.DB) error {
					for _, m := range migrations.Migrators(db) {
						ms, err := m.Migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.Module)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: withDB(func(c *cli.Context, _ *config.Config, db *bun.DB) error {
					moduleName := c.Args().First()
					for _, m := range migrations.Migrators(db) {
						if m.Module != moduleName {
							continue
						}
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.Migrator.CreateGoMigration(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						return nil
					}
					return fmt.Errorf("invalid module name: %s", moduleName)
				}),
			},
		},
	}
}

// migrateQueue applies river's own schema migrations.
func migrateQueue(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect for queue migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create queue migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("failed to migrate queue schema: %w", err)
	}
	if len(res.Versions) == 0 {
		fmt.Println("No new migrations to run for module: queue")
	}
	for _, v := range res.Versions {
		fmt.Printf("Migrated module: queue to version %d\n", v.Version)
	}
	return nil
}

func newSheetsCommand() *cli.Command {
	// run builds only the sheets module; no HTTP routes are registered.
	run := func(c *cli.Context, op func(ctx context.Context, m *sheets.Module) (any, error)) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		obs, err := observability.Init(cfg.Observability)
		if err != nil {
			return err
		}
		db := app.NewDB(cfg.Postgres.DSN)
		defer db.Close()

		m, err := sheets.NewModule(c.Context, cfg, obs, db, nil, nil)
		if err != nil {
			return err
		}
		res, err := op(c.Context, m)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	return &cli.Command{
		Name:  "sheets",
		Usage: "spreadsheet export and sync",
		Subcommands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "export registrations or seating to its spreadsheet",
				ArgsUsage: "registrations|seating",
				Action: func(c *cli.Context) error {
					switch target := c.Args().First(); target {
					case config.SheetRegistrations:
						return run(c, func(ctx context.Context, m *sheets.Module) (any, error) {
							return m.GetService().ExportRegistrations(ctx)
						})
					case config.SheetSeating:
						return run(c, func(ctx context.Context, m *sheets.Module) (any, error) {
							return m.GetService().ExportSeating(ctx)
						})
					default:
						return fmt.Errorf("unknown export target %q (want registrations or seating)", target)
					}
				},
			},
			{
				Name:  "sync",
				Usage: "apply the seating layout from the sync spreadsheet",
				Action: func(c *cli.Context) error {
					return run(c, func(ctx context.Context, m *sheets.Module) (any, error) {
						return m.GetService().Sync(ctx)
					})
				},
			},
		},
	}
}
