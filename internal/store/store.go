// Package store persists the inventory entities and enforces the
// relational integrity rules between them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"devicehub-api/internal/models"
)

// Store is an explicitly constructed handle over one database. It owns a
// repository per entity; there is no package-level state.
type Store struct {
	db      *sql.DB
	dialect dialect

	Assets      *Repository[models.Asset]
	Departments *Repository[models.Department]
	Suppliers   *Repository[models.Supplier]
	Employees   *Repository[models.Employee]
	Warranties  *Repository[models.Warranty]
	Licenses    *Repository[models.License]
	Maintenance *Repository[models.MaintenanceRecord]
}

// Open connects to dsn with the named driver and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if _, err := dialectFor(driver); err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s, err := New(db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. For SQLite the pool is limited to a single
// connection and foreign key enforcement must already be on.
func New(db *sql.DB, driver string) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if d.family == "sqlite" {
		db.SetMaxOpenConns(1)
		if err := ensureForeignKeys(db); err != nil {
			return nil, err
		}
	}
	return &Store{
		db:          db,
		dialect:     d,
		Assets:      newRepository(db, d, assetTable),
		Departments: newRepository(db, d, departmentTable),
		Suppliers:   newRepository(db, d, supplierTable),
		Employees:   newRepository(db, d, employeeTable),
		Warranties:  newRepository(db, d, warrantyTable),
		Licenses:    newRepository(db, d, licenseTable),
		Maintenance: newRepository(db, d, maintenanceTable),
	}, nil
}

func ensureForeignKeys(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check foreign keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled; add _pragma=foreign_keys(1) to the DSN")
	}
	return nil
}

// DB exposes the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

// Driver returns the database/sql driver name the store was built with.
func (s *Store) Driver() string { return s.dialect.driver }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }
