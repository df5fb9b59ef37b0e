package database

import (
	"context"
	"embed"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrEmptyURI is returned when no connection string is given
var ErrEmptyURI = errors.New("database connection uri is empty")

// ConnectAndMigrate connects with the database behind uri, makes sure the item
// table exists and returns the connection pool
func ConnectAndMigrate(uri string) (*sqlx.DB, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}
	db, err := sqlx.Open("postgres", uri)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to reach database")
	}

	if err := migrateUp(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return db, nil
}

// migrateUp applies the embedded migrations on a dedicated connection that is
// handed back to the pool afterwards. Running it against an up to date schema
// is a no-op.
func migrateUp(ctx context.Context, db *sqlx.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Errorf("failed to release migration connection: %v", err)
		}
	}()

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return err
	}
	logrus.Infof("database schema at version %d (dirty: %t)", version, dirty)
	return nil
}

// Session acquires a dedicated connection from the pool, hands it to fn and
// returns it to the pool once fn is done, whatever the outcome
func Session(ctx context.Context, db *sqlx.DB, fn func(conn *sqlx.Conn) error) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Errorf("failed to release database session: %v", err)
		}
	}()
	return fn(conn)
}
