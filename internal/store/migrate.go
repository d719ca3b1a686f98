package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every embedded migration for the store's dialect that has
// not been applied yet and returns the filenames it applied.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	dir := path.Join("migrations", s.dialect.family)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var applied []string
	for _, name := range files {
		content, err := migrationsFS.ReadFile(path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(content)
		checksum := hex.EncodeToString(sum[:])

		var recorded string
		err = s.db.QueryRowContext(ctx,
			"SELECT checksum FROM schema_migrations WHERE filename = "+s.dialect.placeholder(1), name).Scan(&recorded)
		switch {
		case err == nil:
			if recorded != checksum {
				return applied, fmt.Errorf("migration %s changed after it was applied", name)
			}
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}

		if err := s.apply(ctx, name, checksum, string(content)); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func (s *Store) apply(ctx context.Context, name, checksum, content string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range splitStatements(content) {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO schema_migrations (filename, checksum) VALUES (%s, %s)",
			s.dialect.placeholder(1), s.dialect.placeholder(2)),
		name, checksum)
	if err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit()
}

// splitStatements splits a migration on semicolons, dropping chunks that
// hold only comments or whitespace.
func splitStatements(content string) []string {
	var out []string
	for _, chunk := range strings.Split(content, ";") {
		if hasSQL(chunk) {
			out = append(out, strings.TrimSpace(chunk))
		}
	}
	return out
}

func hasSQL(chunk string) bool {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return true
		}
	}
	return false
}
