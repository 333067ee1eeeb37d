package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/locationgenius/dashboard/internal/infrastructure/config"
	"github.com/locationgenius/dashboard/internal/infrastructure/database"
	"github.com/locationgenius/dashboard/internal/infrastructure/migration"
	"github.com/locationgenius/dashboard/internal/infrastructure/persistence/seeds"
	"github.com/locationgenius/dashboard/internal/infrastructure/repository"
	"github.com/locationgenius/dashboard/internal/shared/biztime"
	"github.com/locationgenius/dashboard/internal/shared/db"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	steps      int
	seedFile   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply or roll back the embedded SQL scripts, check status, create new scripts and seed default templates.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new timestamped SQL migration in the source scripts directory.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install default message templates",
		Long:  `Insert the default welcome and location_result templates. Types that already have an active template are skipped.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (default: embedded templates)")

	return cmd
}

// initEnv loads configuration and opens the database. The caller closes it.
func initEnv() (*config.Config, logger.Interface, *gorm.DB, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, database.Get(), nil
}

func newStrategy(cfg *config.Config, log logger.Interface) (*migration.GooseStrategy, error) {
	dialect, err := migration.DialectForDriver(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	return migration.NewGooseStrategy(dialect, log), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, gdb, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	manager, err := migration.NewManager(cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	return manager.Migrate(cmd.Context(), gdb)
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, gdb, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	strategy, err := newStrategy(cfg, log)
	if err != nil {
		return err
	}
	if err := strategy.MigrateDown(cmd.Context(), gdb, steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, gdb, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	strategy, err := newStrategy(cfg, log)
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(cmd.Context(), gdb)
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Driver:          %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(cmd.Context(), gdb); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewLogger()

	dir, err := filepath.Abs(migration.SourceScriptsPath)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("scripts directory %s not found, run from the repository root: %w", dir, err)
	}

	strategy, err := newStrategy(cfg, log)
	if err != nil {
		return err
	}
	target, err := strategy.Create(dir, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, target)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, log, gdb, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	templates, err := loadSeeds()
	if err != nil {
		return err
	}

	created, err := seedTemplates(cmd.Context(), gdb, templates, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d of %d templates\n", created, len(templates))
	return nil
}

func loadSeeds() ([]seeds.TemplateSeed, error) {
	if seedFile == "" {
		return seeds.DefaultTemplates()
	}
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return seeds.ParseTemplates(data)
}

func seedTemplates(ctx context.Context, gdb *gorm.DB, templates []seeds.TemplateSeed, log logger.Interface) (int, error) {
	return seeds.SeedTemplates(ctx, db.NewTransactionManager(gdb), repository.NewMessageTemplateRepository(gdb), templates, log)
}
