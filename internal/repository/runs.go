package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/common"
	"github.com/stack-insights/statement-recon/internal/rows"
)

// Run is one recorded extraction batch.
type Run struct {
	ID           uuid.UUID
	StartedAt    time.Time
	FinishedAt   time.Time
	FileCount    int
	RowCount     int
	WarningCount int
}

// RunRepository stores run history and the rows each run produced.
type RunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunRepository(db *sql.DB, logger *slog.Logger) *RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunRepository{db: db, logger: logger}
}

// SaveRun writes the run header and its rows in one transaction. The numbered
// placeholder style works for both supported drivers.
func (r *RunRepository) SaveRun(ctx context.Context, run Run, extracted []rows.Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", common.ErrDatabase, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO extraction_runs (id, started_at, finished_at, file_count, row_count, warning_count)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID.String(), run.StartedAt, run.FinishedAt,
		run.FileCount, run.RowCount, run.WarningCount,
	)
	if err != nil {
		return fmt.Errorf("%w: insert run: %v", common.ErrDatabase, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO extraction_rows (run_id, seq, isin, security_name, value, span, source, page, sr_no)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("%w: prepare row insert: %v", common.ErrDatabase, err)
	}
	defer stmt.Close()

	for i, row := range extracted {
		if _, err := stmt.ExecContext(ctx,
			run.ID.String(), i,
			nullString(row, constants.FieldISIN),
			nullString(row, constants.FieldSecurityName),
			nullString(row, constants.FieldValue),
			nullString(row, constants.FieldSpan),
			rowSource(row),
			nullInt(row, constants.FieldPage),
			nullInt(row, constants.FieldSerialNo),
		); err != nil {
			return fmt.Errorf("%w: insert row: %v", common.ErrDatabase, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit run: %v", common.ErrDatabase, err)
	}

	r.logger.Info("repository.run.saved",
		"run_id", run.ID.String(),
		"rows", len(extracted),
	)
	return nil
}

// RecentRuns returns the latest run headers, newest first.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rs, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, file_count, row_count, warning_count
		 FROM extraction_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query runs: %v", common.ErrDatabase, err)
	}
	defer rs.Close()

	var out []Run
	for rs.Next() {
		var (
			run Run
			id  string
		)
		if err := rs.Scan(&id, &run.StartedAt, &run.FinishedAt,
			&run.FileCount, &run.RowCount, &run.WarningCount); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", common.ErrDatabase, err)
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: parse run id: %v", common.ErrDatabase, err)
		}
		out = append(out, run)
	}
	return out, rs.Err()
}

func nullString(row rows.Row, key string) sql.NullString {
	v, ok := row[key]
	if !ok || v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: rows.Stringify(v), Valid: true}
}

func nullInt(row rows.Row, key string) sql.NullInt64 {
	v, ok := row[key]
	if !ok {
		return sql.NullInt64{}
	}
	switch t := v.(type) {
	case int:
		return sql.NullInt64{Int64: int64(t), Valid: true}
	case int64:
		return sql.NullInt64{Int64: t, Valid: true}
	case float64:
		return sql.NullInt64{Int64: int64(t), Valid: true}
	default:
		return sql.NullInt64{}
	}
}

// rowSource prefers the PDF origin and falls back to the image origin.
func rowSource(row rows.Row) sql.NullString {
	if s := nullString(row, constants.FieldSourcePDF); s.Valid {
		return s
	}
	return nullString(row, constants.FieldSourceImage)
}
