package postgres

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
)

// RunMigrations applies all pending schema migrations from sourceURL
// (e.g. "file://migrations") against the database at dbURL. A database
// that is already up to date is not an error.
func RunMigrations(dbURL, sourceURL string, log logging.Logger) error {
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to initialize migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("failed to close migration source", logging.Err(srcErr))
		}
		if dbErr != nil {
			log.Warn("failed to close migration database", logging.Err(dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("database schema is up to date")
			return nil
		}
		return errors.Wrap(err, errors.CodeDatabaseError, "migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read migration version")
	}
	log.Info("database migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty),
	)
	return nil
}
