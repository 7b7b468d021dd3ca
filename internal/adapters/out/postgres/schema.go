package postgres

import (
	"fmt"

	"logistics/internal/adapters/out/postgres/branchrepo"
	"logistics/internal/adapters/out/postgres/packagerepo"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/trackingrepo"
	"logistics/internal/adapters/out/postgres/userrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects with driver error translation enabled, so unique and foreign key
// violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// DSN builds a key/value connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&branchrepo.BranchDTO{},
		&shipmentrepo.ShipmentDTO{},
		&trackingrepo.TrackingEventDTO{},
		&packagerepo.PackageDTO{},
	)
}

// Tables lists the managed tables, children first, for truncation in tests.
func Tables() []string {
	return []string{"packages", "tracking_events", "shipments", "branches", "users"}
}
