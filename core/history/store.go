package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lmgveerhoek/rescan/core/reconcile"
)

// Run is the persisted record of a completed reconciliation run.
// Collections are stored as JSON text so the schema works on both
// supported drivers.
type Run struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	RunID          string    `gorm:"uniqueIndex;size:64" json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	DurationMS     int64     `json:"duration_ms"`
	TotalScanned   int       `json:"total_scanned"`
	TotalMissing   int       `json:"total_missing"`
	BrokenSymlinks int       `json:"broken_symlinks"`
	Missing        string    `gorm:"type:text" json:"-"`
	Errors         string    `gorm:"type:text" json:"-"`
	Warnings       string    `gorm:"type:text" json:"-"`
	CreatedAt      time.Time `json:"-"`
}

// Store persists run summaries and serves them back to the status API.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records the summary of a finished run.
func (s *Store) Save(ctx context.Context, summary *reconcile.Summary) error {
	run, err := fromSummary(summary)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save run %s: %w", summary.RunID, err)
	}
	return nil
}

// Recent returns the most recent run summaries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]reconcile.Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	summaries := make([]reconcile.Summary, 0, len(runs))
	for i := range runs {
		summary, err := toSummary(&runs[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// Latest returns the most recent run summary, or gorm.ErrRecordNotFound
// when no run has completed yet.
func (s *Store) Latest(ctx context.Context) (*reconcile.Summary, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return toSummary(&run)
}

func fromSummary(summary *reconcile.Summary) (*Run, error) {
	missing, err := json.Marshal(summary.Missing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode missing items: %w", err)
	}
	errs, err := json.Marshal(summary.Errors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode errors: %w", err)
	}
	warnings, err := json.Marshal(summary.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode warnings: %w", err)
	}

	return &Run{
		RunID:          summary.RunID,
		StartedAt:      summary.StartedAt,
		DurationMS:     summary.Duration.Milliseconds(),
		TotalScanned:   summary.TotalScanned,
		TotalMissing:   summary.TotalMissing,
		BrokenSymlinks: summary.BrokenSymlinks,
		Missing:        string(missing),
		Errors:         string(errs),
		Warnings:       string(warnings),
	}, nil
}

func toSummary(run *Run) (*reconcile.Summary, error) {
	summary := &reconcile.Summary{
		RunID:          run.RunID,
		StartedAt:      run.StartedAt,
		Duration:       time.Duration(run.DurationMS) * time.Millisecond,
		TotalScanned:   run.TotalScanned,
		TotalMissing:   run.TotalMissing,
		BrokenSymlinks: run.BrokenSymlinks,
	}

	if run.Missing != "" {
		if err := json.Unmarshal([]byte(run.Missing), &summary.Missing); err != nil {
			return nil, fmt.Errorf("failed to decode missing items for run %s: %w", run.RunID, err)
		}
	}
	if run.Errors != "" {
		if err := json.Unmarshal([]byte(run.Errors), &summary.Errors); err != nil {
			return nil, fmt.Errorf("failed to decode errors for run %s: %w", run.RunID, err)
		}
	}
	if run.Warnings != "" {
		if err := json.Unmarshal([]byte(run.Warnings), &summary.Warnings); err != nil {
			return nil, fmt.Errorf("failed to decode warnings for run %s: %w", run.RunID, err)
		}
	}
	return summary, nil
}
