// Package catalog stores imported entries in a SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lehigh-university-libraries/reconcile/hub"
)

// ErrNotFound is returned when an entry id is not in the catalog.
var ErrNotFound = errors.New("entry not found")

// DB wraps the SQLite catalog connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens or creates the catalog at dbPath and initializes the schema.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	conn.SetMaxOpenConns(1)

	for _, schema := range []string{
		createRecordsTable,
		createRecordFieldsTable,
		createRecordContributorsTable,
		createURLRewritesTable,
	} {
		if _, err := conn.Exec(schema); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}

	return &DB{conn: conn, now: time.Now}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Save writes entries in one transaction. An entry whose id is already
// stored replaces the stored one.
func (db *DB) Save(ctx context.Context, entries []*hub.Entry) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := make(map[string]*sql.Stmt)
	for _, q := range []string{deleteRecord, insertRecord, insertRecordField, insertRecordContributor, insertURLRewrite} {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()
		stmts[q] = stmt
	}

	importedAt := db.now().UTC().Format(time.RFC3339)

	for _, e := range entries {
		r := e.Record
		if _, err := stmts[deleteRecord].ExecContext(ctx, r.ID); err != nil {
			return fmt.Errorf("failed to replace entry %s: %w", r.ID, err)
		}
		if _, err := stmts[insertRecord].ExecContext(ctx, r.ID, r.Genre, importedAt); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", r.ID, err)
		}
		for _, name := range r.Keys() {
			if _, err := stmts[insertRecordField].ExecContext(ctx, r.ID, name, r.Fields[name]); err != nil {
				return fmt.Errorf("failed to insert field %s of %s: %w", name, r.ID, err)
			}
		}
		for i, c := range e.Contributors {
			if _, err := stmts[insertRecordContributor].ExecContext(ctx, r.ID, i, c); err != nil {
				return fmt.Errorf("failed to link contributor %s to %s: %w", c, r.ID, err)
			}
		}
		for original, canonical := range e.URLs {
			if _, err := stmts[insertURLRewrite].ExecContext(ctx, r.ID, original, canonical); err != nil {
				return fmt.Errorf("failed to record url rewrite of %s: %w", r.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, selectRecordCount).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Get loads one entry by id.
func (db *DB) Get(ctx context.Context, id string) (*hub.Entry, error) {
	var genre string
	err := db.conn.QueryRowContext(ctx, selectRecord, id).Scan(&genre)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %s: %w", id, err)
	}

	fields, err := db.pairs(ctx, selectRecordFields, id)
	if err != nil {
		return nil, err
	}
	urls, err := db.pairs(ctx, selectURLRewrites, id)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		urls = nil
	}
	contributors, err := db.column(ctx, selectRecordContributors, id)
	if err != nil {
		return nil, err
	}

	return &hub.Entry{
		Record:       &hub.Record{Genre: genre, ID: id, Fields: fields},
		Contributors: contributors,
		URLs:         urls,
	}, nil
}

// EntriesByContributor returns the ids of entries linked to a contributor.
func (db *DB) EntriesByContributor(ctx context.Context, contributorID string) ([]string, error) {
	return db.column(ctx, selectRecordsByContributor, contributorID)
}

func (db *DB) pairs(ctx context.Context, query, id string) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", id, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (db *DB) column(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", arg, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
