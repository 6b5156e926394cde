// Package repository persists extraction runs. It speaks database/sql so the
// same code serves an embedded SQLite file in development and Postgres when a
// shared store is configured.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/stack-insights/statement-recon/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id            TEXT PRIMARY KEY,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP NOT NULL,
	file_count    INTEGER NOT NULL,
	row_count     INTEGER NOT NULL,
	warning_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS extraction_rows (
	run_id        TEXT NOT NULL,
	seq           INTEGER NOT NULL,
	isin          TEXT,
	security_name TEXT,
	value         TEXT,
	span          TEXT,
	source        TEXT,
	page          INTEGER,
	sr_no         INTEGER,
	PRIMARY KEY (run_id, seq)
);
`

// Open connects using the DSN scheme to pick a driver: postgres URLs go
// through pgx, anything else is treated as a SQLite path. The schema is
// applied on every open; both statements are idempotent.
func Open(ctx context.Context, cfg common.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverFor(cfg.DSN), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", common.ErrDatabase, err)
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", common.ErrDatabase, err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: apply schema: %.40s: %v", common.ErrDatabase, stmt, err)
		}
	}
	return nil
}
