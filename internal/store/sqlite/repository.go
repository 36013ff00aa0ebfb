// Package sqlite provides the SQLite-backed implementation of
// store.OrderStore.
//
// WAL mode is enabled on Open so the admin panel can list orders while a
// print execution is stamping printed_at — readers never block the writer
// and vice versa.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carlaolanches/printer-server/internal/domain"
	"github.com/carlaolanches/printer-server/internal/store"

	// Register the pure-Go SQLite driver.
	// modernc.org/sqlite avoids CGO, so the binary cross-compiles for the
	// shop's Windows box without a C toolchain.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
// The order payload is stored as a JSON TEXT column: it is written once at
// creation and never updated, so there is nothing to gain from exploding it
// into columns. Status and timestamps live beside it because they are the
// only mutable fields.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    -- Opaque unique id, generated at creation. The only lookup key.
    id          TEXT PRIMARY KEY,

    -- Lifecycle state: 'pendente' or 'impresso'.
    status      TEXT NOT NULL DEFAULT 'pendente',

    -- Wall-clock timestamps (RFC3339 stored as TEXT, SQLite idiom).
    -- printed_at is NULL until the one and only pendente -> impresso
    -- transition happens.
    created_at  TEXT NOT NULL,
    printed_at  TEXT,

    -- The submitted order payload, JSON-serialised, immutable.
    payload     TEXT NOT NULL
);

-- Index for the admin panel's "show me what still needs printing" view.
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// Store is the SQLite implementation of store.OrderStore.
type Store struct {
	db *sql.DB
}

var _ store.OrderStore = (*Store)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	st, err := sqlite.Open("./orders.db")
func Open(path string) (*Store, error) {
	// The pure-Go driver takes _pragma query parameters. WAL enables
	// concurrent readers; busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection; with one
	// connection every statement is also trivially serialised, which is
	// what makes MarkPrinted's conditional UPDATE race-free.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, order domain.Order) (domain.OrderRecord, error) {
	rec := domain.OrderRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusPending,
		Order:     order,
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: marshal order: %w", err)
	}

	const q = `
		INSERT INTO orders (id, status, created_at, printed_at, payload)
		VALUES (?, ?, ?, NULL, ?)`

	_, err = s.db.ExecContext(ctx, q,
		rec.ID,
		string(rec.Status),
		formatRFC3339(rec.CreatedAt),
		string(payload),
	)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: insert order %q: %w", rec.ID, err)
	}

	return rec, nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.OrderRecord, error) {
	const q = `
		SELECT id, status, created_at, printed_at, payload
		FROM   orders
		WHERE  id = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return domain.OrderRecord{}, store.ErrNotFound
	}
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: get order %q: %w", id, err)
	}
	return rec, nil
}

// List returns all records newest-first. rowid DESC reverses insertion
// order without trusting timestamp resolution.
func (s *Store) List(ctx context.Context) ([]domain.OrderRecord, error) {
	const q = `
		SELECT id, status, created_at, printed_at, payload
		FROM   orders
		ORDER  BY rowid DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.OrderRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list orders: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	return out, nil
}

// MarkPrinted applies the single pendente -> impresso transition.
//
// The UPDATE is conditional on the current status, so under concurrent
// calls exactly one wins; the loser is disambiguated into ErrNotFound or
// ErrAlreadyPrinted by a status read inside the same transaction.
func (s *Store) MarkPrinted(ctx context.Context, id string) (domain.OrderRecord, error) {
	printedAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: mark printed %q: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE orders
		SET    status = ?, printed_at = ?
		WHERE  id = ? AND status = ?`

	res, err := tx.ExecContext(ctx, q,
		string(domain.StatusPrinted),
		formatRFC3339(printedAt),
		id,
		string(domain.StatusPending),
	)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: mark printed %q: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: mark printed %q: %w", id, err)
	}
	if affected == 0 {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
		if err == sql.ErrNoRows {
			return domain.OrderRecord{}, store.ErrNotFound
		}
		if err != nil {
			return domain.OrderRecord{}, fmt.Errorf("sqlite: mark printed %q: %w", id, err)
		}
		return domain.OrderRecord{}, store.ErrAlreadyPrinted
	}

	if err := tx.Commit(); err != nil {
		return domain.OrderRecord{}, fmt.Errorf("sqlite: mark printed %q: %w", id, err)
	}

	return s.Get(ctx, id)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.OrderRecord, error) {
	var rec domain.OrderRecord
	var status, createdAt, payload string
	var printedAt *string

	if err := row.Scan(&rec.ID, &status, &createdAt, &printedAt, &payload); err != nil {
		return domain.OrderRecord{}, err
	}

	st, err := domain.ToStatus(status)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("order %q: %w", rec.ID, err)
	}
	rec.Status = st

	rec.CreatedAt, err = parseRFC3339(createdAt)
	if err != nil {
		return domain.OrderRecord{}, err
	}
	if printedAt != nil {
		t, err := parseRFC3339(*printedAt)
		if err != nil {
			return domain.OrderRecord{}, err
		}
		rec.PrintedAt = &t
	}

	if err := json.Unmarshal([]byte(payload), &rec.Order); err != nil {
		return domain.OrderRecord{}, fmt.Errorf("unmarshal order %q: %w", rec.ID, err)
	}
	return rec, nil
}
