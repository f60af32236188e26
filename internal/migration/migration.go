package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/smallbiznis/derent/internal/audit/domain"
	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
	platformdomain "github.com/smallbiznis/derent/internal/platform/domain"
	rentaldomain "github.com/smallbiznis/derent/internal/rental/domain"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the embedded schema so a self-hosted install is
// usable out of the box.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// AutoMigrate covers the sqlite/mysql path where the embedded postgres
// migrations do not apply.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&platformdomain.PlatformState{},
		&devicedomain.Device{},
		&devicedomain.OwnerAccount{},
		&rentaldomain.Order{},
		&rentaldomain.UserAccount{},
		&tokendomain.TokenAccount{},
		&auditdomain.AuditLog{},
	)
}
