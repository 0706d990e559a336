package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Field is one column/value pair supplied by a caller. Fields keep their
// order, so the generated SQL is deterministic.
type Field struct {
	Column string
	Value  interface{}
}

type Fields []Field

// Filter narrows a List call. Exact entries become equality conjunctions;
// Search becomes a case-insensitive substring match over the schema's
// search columns.
type Filter struct {
	Exact  Fields
	Search string
}

// RowScanner is satisfied by *sql.Row and *sql.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// Schema describes one owned resource table: tasks, notes and posts differ
// only in this description.
type Schema[T any] struct {
	Table         string
	Columns       []string // selected columns, in the order Scan expects them
	SearchColumns []string // free-text search targets for Filter.Search
	Scan          func(row RowScanner) (*T, error)
}

// OwnedStore is the ownership-scoped data access contract shared by every
// resource type. Reads and writes match rows on (id, user_id) jointly; an id
// that exists but belongs to another user behaves exactly like a missing id.
type OwnedStore[T any] interface {
	Create(ctx context.Context, ownerID int64, fields Fields) (*T, error)
	List(ctx context.Context, ownerID int64, filter Filter) ([]*T, error)
	Get(ctx context.Context, ownerID, id int64) (*T, error)
	GetAndIncrement(ctx context.Context, ownerID, id int64, counter string) (*T, error)
	Update(ctx context.Context, ownerID, id int64, changes Fields) (*T, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type OwnedRepository[T any] struct {
	db      *sql.DB
	schema  Schema[T]
	timeout time.Duration
}

// NewOwnedRepository creates an ownership-scoped repository over schema.
func NewOwnedRepository[T any](db *sql.DB, schema Schema[T], timeout time.Duration) *OwnedRepository[T] {
	return &OwnedRepository[T]{db: db, schema: schema, timeout: timeout}
}

func (r *OwnedRepository[T]) columnList() string {
	return strings.Join(r.schema.Columns, ", ")
}

func (r *OwnedRepository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts a new row owned by ownerID and returns it.
func (r *OwnedRepository[T]) Create(ctx context.Context, ownerID int64, fields Fields) (*T, error) {
	columns := []string{"user_id"}
	placeholders := []string{"$1"}
	args := []interface{}{ownerID}

	for i, f := range fields {
		columns = append(columns, f.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, f.Value)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.schema.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		r.columnList(),
	)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s row: %w", r.schema.Table, err)
	}
	return row, nil
}

// List returns every row owned by ownerID that matches filter, newest first.
func (r *OwnedRepository[T]) List(ctx context.Context, ownerID int64, filter Filter) ([]*T, error) {
	query, args := r.buildListQuery(ownerID, filter)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", r.schema.Table, err)
	}
	defer rows.Close()

	var results []*T
	for rows.Next() {
		item, err := r.schema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.schema.Table, err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.schema.Table, err)
	}

	return results, nil
}

func (r *OwnedRepository[T]) buildListQuery(ownerID int64, filter Filter) (string, []interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE user_id = $1", r.columnList(), r.schema.Table)
	args := []interface{}{ownerID}

	for _, f := range filter.Exact {
		args = append(args, f.Value)
		fmt.Fprintf(&sb, " AND %s = $%d", f.Column, len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses := make([]string, 0, len(r.schema.SearchColumns))
		for _, col := range r.schema.SearchColumns {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", col, n))
		}
		fmt.Fprintf(&sb, " AND (%s)", strings.Join(clauses, " OR "))
	}

	sb.WriteString(" ORDER BY created_at DESC")
	return sb.String(), args
}

// Get fetches one row by (id, owner) or returns ErrNotFound.
func (r *OwnedRepository[T]) Get(ctx context.Context, ownerID, id int64) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1 AND user_id = $2",
		r.columnList(), r.schema.Table,
	)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s row: %w", r.schema.Table, err)
	}
	return item, nil
}

// GetAndIncrement bumps counter by one and returns the updated row in a
// single statement, so concurrent readers never lose an increment. The
// updated_at column is deliberately left alone.
func (r *OwnedRepository[T]) GetAndIncrement(ctx context.Context, ownerID, id int64, counter string) (*T, error) {
	query := r.buildIncrementQuery(counter)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment %s on %s: %w", counter, r.schema.Table, err)
	}
	return item, nil
}

func (r *OwnedRepository[T]) buildIncrementQuery(counter string) string {
	return fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1 WHERE id = $1 AND user_id = $2 RETURNING %s",
		r.schema.Table, counter, counter, r.columnList(),
	)
}

// Update applies changes to one row by (id, owner). An empty change set is a
// read: the current row comes back untouched and updated_at does not move.
func (r *OwnedRepository[T]) Update(ctx context.Context, ownerID, id int64, changes Fields) (*T, error) {
	if len(changes) == 0 {
		return r.Get(ctx, ownerID, id)
	}

	query, args := r.buildUpdateQuery(ownerID, id, changes)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := r.schema.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s row: %w", r.schema.Table, err)
	}
	return item, nil
}

func (r *OwnedRepository[T]) buildUpdateQuery(ownerID, id int64, changes Fields) (string, []interface{}) {
	assignments := make([]string, 0, len(changes)+1)
	args := make([]interface{}, 0, len(changes)+2)

	for _, f := range changes {
		args = append(args, f.Value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	assignments = append(assignments, "updated_at = NOW()")

	args = append(args, id, ownerID)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		r.schema.Table,
		strings.Join(assignments, ", "),
		len(args)-1, len(args),
		r.columnList(),
	)
	return query, args
}

// Delete removes one row by (id, owner) or returns ErrNotFound.
func (r *OwnedRepository[T]) Delete(ctx context.Context, ownerID, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", r.schema.Table)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete %s row: %w", r.schema.Table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
