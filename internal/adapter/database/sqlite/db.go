package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"loginapp/db"
)

const memoryPath = ":memory:"

type Config struct {
	Path       string
	LogQueries bool
}

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

func New(cfg Config) (*sql.DB, error) {
	dbPath := cfg.Path

	if dbPath == "" {
		dbPath = "database.db"
	}

	sqlDB, err := otelsql.Open("sqlite3", dbPath,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("loginapp"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, err
	}

	conn := sqlDB

	if cfg.LogQueries {
		logger := zerolog.New(os.Stdout).Level(zerolog.DebugLevel)
		conn = sqldblogger.OpenDriver(dbPath, sqlDB.Driver(), zerologadapter.New(logger))
	}

	// each connection to :memory: is a separate database
	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(100)
		conn.SetMaxIdleConns(5)
	}

	conn.SetConnMaxLifetime(5 * time.Minute)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, err
	}

	if err := RunMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func NewDB(cfg Config) (*DB, error) {
	sqlDB, err := New(cfg)

	if err != nil {
		return nil, err
	}

	return Wrap(sqlDB), nil
}

// Wrap attaches the query builder to an already migrated connection.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(conn *sql.DB) error {
	source, err := iofs.New(db.Migrations, db.SQLiteMigrations)

	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)

	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
