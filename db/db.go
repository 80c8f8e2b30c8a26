package db

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/ninja-software/terror/v2"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Conn interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// Migrate brings the schema up to date using the embedded migration files.
func Migrate(databaseURL string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return terror.Error(err, "read migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return terror.Error(err, "init migrate")
	}
	defer m.Close()
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return terror.Error(err, "run migrations")
	}
	return nil
}

// IsSchemaUp reports whether the products table exists, used by the health check.
func IsSchemaUp(ctx context.Context, conn Conn, count *int) error {
	q := `SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('products', 'blobs')`
	row := conn.QueryRow(ctx, q)
	err := row.Scan(count)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}
