package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/tradecycle/clearing"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed ledger of clearing runs.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path and applies the schema.
// Safe to call on an existing ledger.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: connect %s: %w", path, err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err = db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("ledger: %q: %w", pragma, err)
		}
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun inserts r and its trades in one transaction. An empty r.ID is replaced
// with a fresh UUID and a zero r.CreatedAt with the current time; both are written
// back to r.
func (s *Store) SaveRun(ctx context.Context, r *Run) error {
	if r.Status != StatusCleared && r.Status != StatusFailed {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, strategy, batch, agents, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixMilli(), r.Source, r.Strategy, r.Batch, r.Agents, string(r.Status), r.Error,
	); err != nil {
		return fmt.Errorf("ledger: insert run %s: %w", r.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trades (run_id, seq, giver, receives) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("ledger: prepare trades: %w", err)
	}
	defer stmt.Close()
	for seq, t := range r.Trades {
		if _, err = stmt.ExecContext(ctx, r.ID, seq, t.Giver, t.Receives); err != nil {
			return fmt.Errorf("ledger: insert trade %d of run %s: %w", seq, r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ledger: commit run %s: %w", r.ID, err)
	}

	return nil
}

// GetRun loads run id with its trades in commit order.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var (
		r       Run
		created int64
		status  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, strategy, batch, agents, status, error FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &created, &r.Source, &r.Strategy, &r.Batch, &r.Agents, &status, &r.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: get run %s: %w", id, err)
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	r.Status = Status(status)

	rows, err := s.db.QueryContext(ctx,
		`SELECT giver, receives FROM trades WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("ledger: trades of run %s: %w", id, err)
	}
	defer rows.Close()

	r.Trades = []clearing.Trade{}
	for rows.Next() {
		var t clearing.Trade
		if err = rows.Scan(&t.Giver, &t.Receives); err != nil {
			return nil, fmt.Errorf("ledger: scan trade: %w", err)
		}
		r.Trades = append(r.Trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: trades of run %s: %w", id, err)
	}

	return &r, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT is unbounded
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.source, r.strategy, r.batch, r.agents, r.status,
		       (SELECT COUNT(*) FROM trades t WHERE t.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum     RunSummary
			created int64
			status  string
		)
		if err = rows.Scan(&sum.ID, &created, &sum.Source, &sum.Strategy, &sum.Batch,
			&sum.Agents, &status, &sum.TradeCount); err != nil {
			return nil, fmt.Errorf("ledger: scan run: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(created).UTC()
		sum.Status = Status(status)
		out = append(out, sum)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}

	return out, nil
}
