package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/repository"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// Service is a tiny façade over the history repository that produces XLSX bytes for reports.
type Service struct {
	runs   repository.UploadRepository
	logger *slog.Logger
}

// NewService builds a Service. runs may be nil when only live batches are exported.
func NewService(runs repository.UploadRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{runs: runs, logger: logger}
}

// ExportRunXLSX renders a stored upload run.
func (s *Service) ExportRunXLSX(ctx context.Context, runID string) ([]byte, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("export run %s: history is disabled", runID)
	}
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	return s.write(run)
}

// BatchXLSX renders a batch that was just run.
func (s *Service) BatchXLSX(res entity.BatchResult) ([]byte, error) {
	return s.write(entity.UploadRun{
		ID:        res.RunID,
		Total:     res.Total(),
		Succeeded: res.Succeeded(),
		CreatedAt: time.Now().UTC(),
		Results:   res.Results,
	})
}

func (s *Service) write(run entity.UploadRun) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(resultsSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"#", "Identifier", "Status", "Message", "Page URL"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(resultsSheet, cell, h)
	}

	for i, r := range run.Results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(resultsSheet, cell, v)
		}
		write(1, r.Index)
		write(2, r.Identifier)
		write(3, string(r.Status()))
		write(4, truncate(r.Message, 200))
		write(5, r.PageURL)
	}

	_ = f.SetColWidth(resultsSheet, "A", "A", 6)
	_ = f.SetColWidth(resultsSheet, "B", "B", 24)
	_ = f.SetColWidth(resultsSheet, "C", "C", 12)
	_ = f.SetColWidth(resultsSheet, "D", "D", 60)
	_ = f.SetColWidth(resultsSheet, "E", "E", 48)

	summary := [][2]any{
		{"Run ID", run.ID},
		{"Source", string(run.Source)},
		{"Database ID", run.DatabaseID},
		{"Created At", run.CreatedAt.Format(time.RFC3339)},
		{"Total", run.Total},
		{"Succeeded", run.Succeeded},
		{"Failed", run.Total - run.Succeeded},
	}
	for i, kv := range summary {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), kv[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), kv[1])
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", run.ID,
		"rows", len(run.Results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
