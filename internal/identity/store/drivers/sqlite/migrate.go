package sqlite

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations brings the schema up to date using the migrations embedded
// in the binary.
func (s *Store) ApplyMigrations() error {
	// 1. Wrap the open handle in the migrate sqlite driver
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	// 2. Read migrations from the embedded filesystem
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	// 3. Apply everything pending
	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
