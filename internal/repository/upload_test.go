package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{URL: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(nil) })
	return db
}

func TestDialectAndRebind(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/db"))
	assert.Equal(t, DialectPostgres, DialectFor("PostgreSQL://localhost/db"))
	assert.Equal(t, DialectSQLite, DialectFor("file:history.db"))

	pg := &DB{Dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))
	lite := &DB{Dialect: DialectSQLite}
	assert.Equal(t, "a = ?", lite.Rebind("a = ?"))
}

func TestUploadRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewUploadRepository(db, nil).(*uploadRepository)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }

	first := entity.BatchResult{RunID: "run-1", Results: []entity.RecordResult{
		{Index: 1, Identifier: "홍길동", Success: true, Message: "'홍길동' uploaded", PageID: "p1", PageURL: "https://notion.so/p1"},
		{Index: 2, Identifier: "record #2", Invalid: true, Message: "missing name"},
		{Index: 3, Identifier: "김영희", Message: "upload failed: timeout"},
	}}
	require.NoError(t, repo.RecordBatch(context.Background(), constants.RunSourceRecords, "db1", first))

	repo.now = func() time.Time { return base.Add(time.Hour) }
	second := entity.BatchResult{RunID: "run-2", Results: []entity.RecordResult{
		{Index: 1, Identifier: "박민수", Success: true, Message: "'박민수' uploaded"},
	}}
	require.NoError(t, repo.RecordBatch(context.Background(), constants.RunSourceDocument, "db1", second))

	runs, err := repo.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, constants.RunSourceDocument, runs[0].Source)
	assert.Equal(t, 3, runs[1].Total)
	assert.Equal(t, 1, runs[1].Succeeded)
	assert.True(t, runs[1].CreatedAt.Equal(base))

	got, err := repo.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, first.Results, got.Results)
	assert.Equal(t, first.Succeeded(), got.Batch().Succeeded())

	_, err = repo.GetRun(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestUploadRepository_Rejects(t *testing.T) {
	repo := NewUploadRepository(openTestDB(t), nil)

	assert.Error(t, repo.RecordBatch(context.Background(), constants.RunSourceRecords, "db1", entity.BatchResult{}))

	res := entity.BatchResult{RunID: "dup", Results: []entity.RecordResult{{Index: 1, Identifier: "a", Success: true}}}
	require.NoError(t, repo.RecordBatch(context.Background(), constants.RunSourceRecords, "db1", res))
	assert.Error(t, repo.RecordBatch(context.Background(), constants.RunSourceRecords, "db1", res))

	runs, err := repo.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestUploadRepository_ListRunsOrdersWithinSecond(t *testing.T) {
	repo := NewUploadRepository(openTestDB(t), nil).(*uploadRepository)
	base := time.Date(2026, 3, 1, 9, 0, 5, 0, time.UTC)

	offsets := map[string]time.Duration{
		"whole":  0,
		"half":   500 * time.Millisecond,
		"twelve": 120 * time.Millisecond,
		"one23":  123 * time.Millisecond,
	}
	for _, id := range []string{"whole", "half", "twelve", "one23"} {
		at := base.Add(offsets[id])
		repo.now = func() time.Time { return at }
		res := entity.BatchResult{RunID: id, Results: []entity.RecordResult{{Index: 1, Identifier: id, Success: true}}}
		require.NoError(t, repo.RecordBatch(context.Background(), constants.RunSourceRecords, "db1", res))
	}

	runs, err := repo.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"half", "one23", "twelve", "whole"}, ids)
	assert.True(t, runs[1].CreatedAt.Equal(base.Add(123*time.Millisecond)))
}
