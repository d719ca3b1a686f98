package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// table describes how one entity maps onto its SQL table. columns lists
// every non-id column in the same order as fields returns destinations.
type table[T any] struct {
	entity    string
	name      string
	columns   []string
	id        func(*T) *int64
	fields    func(*T) []any
	normalize func(*T)
}

// args returns the values behind fields, suitable as bind parameters.
func (t table[T]) args(rec *T) []any {
	dst := t.fields(rec)
	out := make([]any, len(dst))
	for i, p := range dst {
		out[i] = reflect.ValueOf(p).Elem().Interface()
	}
	return out
}

// Repository is the CRUD accessor shared by every entity.
type Repository[T any] struct {
	db         *sql.DB
	dialect    dialect
	table      table[T]
	foreign    map[string]Relation
	dependents []Relation

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

func newRepository[T any](db *sql.DB, d dialect, t table[T]) *Repository[T] {
	r := &Repository[T]{
		db:         db,
		dialect:    d,
		table:      t,
		foreign:    foreignKeysOf(t.name),
		dependents: dependentsOf(t.name),
	}

	r.selectSQL = fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name)

	binds := make([]string, len(t.columns))
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		binds[i] = d.placeholder(i + 1)
		sets[i] = c + " = " + binds[i]
	}
	r.insertSQL = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(t.columns, ", "), strings.Join(binds, ", "))
	r.updateSQL = fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		t.name, strings.Join(sets, ", "), d.placeholder(len(t.columns)+1))
	r.deleteSQL = fmt.Sprintf("DELETE FROM %s WHERE id = %s", t.name, d.placeholder(1))
	return r
}

// Entity returns the singular entity name used in errors.
func (r *Repository[T]) Entity() string { return r.table.entity }

// List returns every record in insertion order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.query(ctx, r.db, r.selectSQL+" ORDER BY id")
}

// Get returns the record with the given id.
func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	row := r.db.QueryRowContext(ctx, r.selectSQL+" WHERE id = "+r.dialect.placeholder(1), id)
	if err := r.scan(row, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, notFound(r.table.entity, id)
		}
		return rec, fmt.Errorf("get %s %d: %w", r.table.entity, id, err)
	}
	return rec, nil
}

// Create inserts in and returns it with the store-assigned id. Any id
// carried by in is ignored.
func (r *Repository[T]) Create(ctx context.Context, in T) (T, error) {
	rec := in
	var id int64
	if err := r.db.QueryRowContext(ctx, r.insertSQL, r.table.args(&rec)...).Scan(&id); err != nil {
		var zero T
		return zero, r.classify("create", 0, err)
	}
	*r.table.id(&rec) = id
	if r.table.normalize != nil {
		r.table.normalize(&rec)
	}
	return rec, nil
}

// Update replaces every attribute of the record with the given id. The id
// carried by in is ignored.
func (r *Repository[T]) Update(ctx context.Context, id int64, in T) (T, error) {
	rec := in
	args := append(r.table.args(&rec), id)
	res, err := r.db.ExecContext(ctx, r.updateSQL, args...)
	if err != nil {
		var zero T
		return zero, r.classify("update", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("update %s %d: %w", r.table.entity, id, err)
	}
	if n == 0 {
		var zero T
		return zero, notFound(r.table.entity, id)
	}
	*r.table.id(&rec) = id
	if r.table.normalize != nil {
		r.table.normalize(&rec)
	}
	return rec, nil
}

// Delete removes the record with the given id. It fails with a
// *ReferenceError while any registered relation still points at it.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete %s %d: begin: %w", r.table.entity, id, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, rel := range r.dependents {
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", rel.Child, rel.Column, r.dialect.placeholder(1))
		var count int
		if err = tx.QueryRowContext(ctx, q, id).Scan(&count); err != nil {
			return fmt.Errorf("delete %s %d: count %s: %w", r.table.entity, id, rel.Child, err)
		}
		if count > 0 {
			return &ReferenceError{
				Entity:    r.table.entity,
				ID:        id,
				Dependent: rel.Child,
				Column:    rel.Column,
				Count:     count,
			}
		}
	}

	res, err := tx.ExecContext(ctx, r.deleteSQL, id)
	if err != nil {
		return r.classify("delete", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table.entity, id, err)
	}
	if n == 0 {
		return notFound(r.table.entity, id)
	}
	if err = tx.Commit(); err != nil {
		return r.classify("delete", id, err)
	}
	return nil
}

// ListBy returns the records whose foreign key column equals id.
func (r *Repository[T]) ListBy(ctx context.Context, column string, id int64) ([]T, error) {
	if _, ok := r.foreign[column]; !ok {
		return nil, fmt.Errorf("%s has no foreign key %q", r.table.name, column)
	}
	q := fmt.Sprintf("%s WHERE %s = %s ORDER BY id", r.selectSQL, column, r.dialect.placeholder(1))
	return r.query(ctx, r.db, q, id)
}

// findBy returns the first record whose column equals value.
func (r *Repository[T]) findBy(ctx context.Context, column string, value any) (T, bool, error) {
	var rec T
	if !slices.Contains(r.table.columns, column) {
		return rec, false, fmt.Errorf("%s has no column %q", r.table.name, column)
	}
	q := fmt.Sprintf("%s WHERE %s = %s ORDER BY id LIMIT 1", r.selectSQL, column, r.dialect.placeholder(1))
	if err := r.scan(r.db.QueryRowContext(ctx, q, value), &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, false, nil
		}
		return rec, false, fmt.Errorf("find %s by %s: %w", r.table.entity, column, err)
	}
	return rec, true, nil
}

func (r *Repository[T]) query(ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var rec T
		if err := r.scan(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table.entity, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.name, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository[T]) scan(s scanner, rec *T) error {
	dst := append([]any{r.table.id(rec)}, r.table.fields(rec)...)
	if err := s.Scan(dst...); err != nil {
		return err
	}
	if r.table.normalize != nil {
		r.table.normalize(rec)
	}
	return nil
}

// classify maps driver constraint errors onto the store's error kinds.
func (r *Repository[T]) classify(op string, id int64, err error) error {
	switch violationOf(err) {
	case foreignKeyViolation:
		if op == "delete" {
			return &ReferenceError{Entity: r.table.entity, ID: id, Err: err}
		}
		return fmt.Errorf("%s %s: references a missing record: %w: %w", op, r.table.entity, ErrInvalid, err)
	case uniqueViolation:
		return fmt.Errorf("%s %s: %w: %w", op, r.table.entity, ErrConflict, err)
	case notNullViolation:
		return fmt.Errorf("%s %s: missing required field: %w: %w", op, r.table.entity, ErrInvalid, err)
	}
	return fmt.Errorf("%s %s: %w", op, r.table.entity, err)
}
