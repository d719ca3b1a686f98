package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported database/sql driver names.
const (
	DriverPgx    = "pgx"
	DriverPQ     = "postgres"
	DriverSQLite = "sqlite"
)

type dialect struct {
	driver string
	// family selects the migration directory and placeholder style.
	family string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverPgx, DriverPQ:
		return dialect{driver: driver, family: "postgres"}, nil
	case DriverSQLite:
		return dialect{driver: driver, family: "sqlite"}, nil
	}
	return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// placeholder returns the n-th (1-based) bind parameter.
func (d dialect) placeholder(n int) string {
	if d.family == "sqlite" {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// sqliteDSN forces the pragmas the integrity layer depends on.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

type violation int

const (
	noViolation violation = iota
	foreignKeyViolation
	uniqueViolation
	notNullViolation
)

// SQLSTATE class 23 codes shared by pgx and lib/pq.
const (
	sqlStateNotNull    = "23502"
	sqlStateForeignKey = "23503"
	sqlStateUnique     = "23505"
)

func violationOf(err error) violation {
	if err == nil {
		return noViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return sqlStateViolation(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return sqlStateViolation(string(pqErr.Code))
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return notNullViolation
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "foreign key constraint"):
		return foreignKeyViolation
	case strings.Contains(msg, "unique constraint"):
		return uniqueViolation
	case strings.Contains(msg, "not null constraint"):
		return notNullViolation
	}
	return noViolation
}

func sqlStateViolation(code string) violation {
	switch code {
	case sqlStateForeignKey:
		return foreignKeyViolation
	case sqlStateUnique:
		return uniqueViolation
	case sqlStateNotNull:
		return notNullViolation
	}
	return noViolation
}
