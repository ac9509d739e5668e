// Package commands wires the migration engine into the CLI surface:
// migrate, serve, export, inspect-map.
package commands

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"migration-service/internal/config"
	"migration-service/internal/events"
	"migration-service/internal/identity"
	"migration-service/internal/legacy"
	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/repository"
)

// App carries lazily-initialized shared dependencies for all subcommands.
type App struct {
	Config *config.Config
	Log    *logrus.Logger

	dest      *gorm.DB
	legacyDB  *gorm.DB
	store     identity.Store
	publisher *events.Publisher
}

// Dest opens (once) the destination Postgres connection and migrates the
// service-owned tables.
func (a *App) Dest() (*gorm.DB, error) {
	if a.dest != nil {
		return a.dest, nil
	}
	db, err := gorm.Open(postgres.Open(a.Config.GetDestinationDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to destination database: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.Customer{},
		&models.Product{},
		&models.SalesChannel{},
		&models.Order{},
		&models.Payment{},
		&models.Repair{},
		&models.Tag{},
		&models.InventoryLevel{},
		&models.MigrationRunRecord{},
		&models.IdentityMapping{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate destination schema: %w", err)
	}
	a.dest = db
	return db, nil
}

// Legacy opens (once) the read-only legacy MySQL connection.
func (a *App) Legacy() (*gorm.DB, error) {
	if a.legacyDB != nil {
		return a.legacyDB, nil
	}
	db, err := gorm.Open(mysql.Open(a.Config.GetLegacyDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to legacy database: %w", err)
	}
	a.legacyDB = db
	return db, nil
}

// Store returns the configured identity-map store backend.
func (a *App) Store() (identity.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	switch a.Config.IdentityMap.Backend {
	case "redis":
		opt, err := redis.ParseURL(a.Config.IdentityMap.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		a.store = identity.NewRedisStore(redis.NewClient(opt))
	case "table":
		db, err := a.Dest()
		if err != nil {
			return nil, err
		}
		a.store = identity.NewTableStore(db)
	default:
		fs, err := identity.NewFileStore(a.Config.IdentityMap.Dir)
		if err != nil {
			return nil, err
		}
		a.store = fs
	}
	return a.store, nil
}

// Publisher connects to NATS when configured; a nil publisher is fine.
func (a *App) Publisher() *events.Publisher {
	if a.publisher != nil {
		return a.publisher
	}
	if a.Config.App.NATSUrl == "" {
		return nil
	}
	pub, err := events.NewPublisher(a.Config.App.NATSUrl, a.Log)
	if err != nil {
		a.Log.WithError(err).Warn("Failed to connect to NATS; continuing without events")
		return nil
	}
	a.publisher = pub
	return pub
}

// Engine assembles the migration engine from the app's dependencies.
func (a *App) Engine() (*migration.Engine, error) {
	legacyDB, err := a.Legacy()
	if err != nil {
		return nil, err
	}
	dest, err := a.Dest()
	if err != nil {
		return nil, err
	}
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	reader := legacy.NewReader(legacyDB, a.Log)
	recorder := repository.NewRunRepository(dest)

	var publisher migration.EventPublisher
	if p := a.Publisher(); p != nil {
		publisher = p
	}
	return migration.NewEngine(reader, dest, store, recorder, publisher, a.Log, a.Config.App.ChunkSize), nil
}

// NewRootCommand builds the CLI.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migration-service",
		Short:         "Legacy POS to platform data migration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(app),
		newServeCommand(app),
		newExportCommand(app),
		newInspectMapCommand(app),
	)
	return rootCmd
}
