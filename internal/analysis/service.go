package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bodega-labs/bodega/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

// Service owns the run/export surface of the analysis. It keeps the last
// successful report in memory; the export operations read that, never the
// store. Concurrent run triggers collapse into a single pipeline execution.
type Service struct {
	store      storage.SaleStore
	pipeline   *Pipeline
	pageSize   int
	exportPath string

	group singleflight.Group

	mu         sync.Mutex
	lastReport string
	lastRunAt  time.Time
}

// NewService builds the analysis service.
func NewService(store storage.SaleStore, pipeline *Pipeline, pageSize int, exportPath string) *Service {
	if store == nil {
		panic("analysis: store must not be nil")
	}
	if pipeline == nil {
		panic("analysis: pipeline must not be nil")
	}
	return &Service{
		store:      store,
		pipeline:   pipeline,
		pageSize:   pageSize,
		exportPath: exportPath,
	}
}

// Run loads a snapshot, executes the full pipeline and stores the formatted
// report as the current result. The caller blocks until the run completes or
// fails; progress lands in the structured log, one line per stage. Concurrent
// callers share a single in-flight run and all receive its report.
func (s *Service) Run(ctx context.Context) (string, error) {
	report, err, shared := s.group.Do("full-analysis", func() (interface{}, error) {
		return s.runOnce(ctx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		slog.Debug("[Analysis] Run result shared with concurrent trigger")
	}
	return report.(string), nil
}

func (s *Service) runOnce(ctx context.Context) (string, error) {
	started := time.Now()
	slog.Info("[Analysis] Starting full analysis")

	snap, err := LoadSnapshot(ctx, s.store, s.pageSize)
	if err != nil {
		slog.Error("[Analysis] Snapshot load failed", "error", err)
		return "", err
	}

	res := s.pipeline.Run(snap, func(stage, total int, label string) {
		slog.Info("[Analysis] Stage", "stage", stage, "total", total, "label", label)
	})
	report := FormatReport(res)

	s.mu.Lock()
	s.lastReport = report
	s.lastRunAt = res.GeneratedAt
	s.mu.Unlock()

	slog.Info("[Analysis] Full analysis complete",
		"records", res.RecordCount,
		"duration", time.Since(started),
	)
	return report, nil
}

// LastReport returns the most recent report, or ok=false when no run has
// succeeded yet.
func (s *Service) LastReport() (string, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReport == "" {
		return "", time.Time{}, false
	}
	return s.lastReport, s.lastRunAt, true
}

// ExportTo streams the CSV form of the last report to w.
// Returns ErrNoResults when no run has succeeded yet; nothing is written then.
func (s *Service) ExportTo(w io.Writer) error {
	report, _, ok := s.LastReport()
	if !ok {
		return ErrNoResults
	}
	return ExportCSV(w, report)
}

// ExportFile writes the CSV export to the configured path and returns it.
// Filesystem errors surface verbatim, no retry.
func (s *Service) ExportFile() (string, error) {
	report, _, ok := s.LastReport()
	if !ok {
		return "", ErrNoResults
	}

	f, err := os.Create(s.exportPath)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := ExportCSV(f, report); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	slog.Info("[Analysis] Report exported", "path", s.exportPath)
	return s.exportPath, nil
}
