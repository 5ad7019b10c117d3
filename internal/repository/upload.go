package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

var ErrRunNotFound = errors.New("upload run not found")

// createdAtLayout is fixed width so created_at sorts correctly as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type UploadRepository interface {
	RecordBatch(ctx context.Context, source constants.RunSource, databaseID string, result entity.BatchResult) error
	ListRuns(ctx context.Context, limit int) ([]entity.UploadRun, error)
	GetRun(ctx context.Context, id string) (entity.UploadRun, error)
}

type uploadRepository struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

func NewUploadRepository(db *DB, logger *slog.Logger) UploadRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &uploadRepository{db: db, logger: logger, now: time.Now}
}

func (r *uploadRepository) RecordBatch(ctx context.Context, source constants.RunSource, databaseID string, result entity.BatchResult) error {
	if result.RunID == "" {
		return fmt.Errorf("record batch: empty run id")
	}

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO upload_runs (id, source, database_id, total, succeeded, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		result.RunID, string(source), databaseID, result.Total(), result.Succeeded(),
		r.now().UTC().Format(createdAtLayout),
	)
	if err != nil {
		r.logger.Error("failed to insert upload run", "run_id", result.RunID, "error", err)
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(
		`INSERT INTO upload_records (run_id, idx, identifier, status, message, page_id, page_url) VALUES (?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rr := range result.Results {
		if _, err := stmt.ExecContext(ctx, result.RunID, rr.Index, rr.Identifier, string(rr.Status()), rr.Message, rr.PageID, rr.PageURL); err != nil {
			r.logger.Error("failed to insert upload record", "run_id", result.RunID, "index", rr.Index, "error", err)
			return fmt.Errorf("insert record %d: %w", rr.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("repository.upload_run.saved", "run_id", result.RunID, "records", result.Total())
	return nil
}

// ListRuns returns the most recent runs first, without per-record results.
func (r *uploadRepository) ListRuns(ctx context.Context, limit int) ([]entity.UploadRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.SQL.QueryContext(ctx, r.db.Rebind(
		`SELECT id, source, database_id, total, succeeded, created_at FROM upload_runs ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		r.logger.Error("failed to list upload runs", "error", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []entity.UploadRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *uploadRepository) GetRun(ctx context.Context, id string) (entity.UploadRun, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.Rebind(
		`SELECT id, source, database_id, total, succeeded, created_at FROM upload_runs WHERE id = ?`), id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.UploadRun{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return entity.UploadRun{}, err
	}

	rows, err := r.db.SQL.QueryContext(ctx, r.db.Rebind(
		`SELECT idx, identifier, status, message, page_id, page_url FROM upload_records WHERE run_id = ? ORDER BY idx`), id)
	if err != nil {
		return entity.UploadRun{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rr entity.RecordResult
		var status string
		if err := rows.Scan(&rr.Index, &rr.Identifier, &status, &rr.Message, &rr.PageID, &rr.PageURL); err != nil {
			return entity.UploadRun{}, err
		}
		rr.Success = status == string(constants.RecordStatusUploaded)
		rr.Invalid = status == string(constants.RecordStatusInvalid)
		run.Results = append(run.Results, rr)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (entity.UploadRun, error) {
	var run entity.UploadRun
	var source, created string
	if err := s.Scan(&run.ID, &source, &run.DatabaseID, &run.Total, &run.Succeeded, &created); err != nil {
		return entity.UploadRun{}, err
	}
	run.Source = constants.RunSource(source)
	t, err := time.Parse(createdAtLayout, created)
	if err != nil {
		return entity.UploadRun{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	run.CreatedAt = t
	return run, nil
}
