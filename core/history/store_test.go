package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/lmgveerhoek/rescan/core/reconcile"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func testSummary() *reconcile.Summary {
	return &reconcile.Summary{
		RunID:          "run-42",
		StartedAt:      time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC),
		Duration:       83 * time.Second,
		TotalScanned:   120,
		TotalMissing:   2,
		BrokenSymlinks: 1,
		Missing: map[string][]string{
			"Movies": {"/media/movies/A/a.mkv", "/media/movies/B/b.mkv"},
		},
		Errors:   []string{"failed to refresh /media/movies/B"},
		Warnings: []string{"no matching library found for path: /media/other/x.mkv"},
	}
}

func TestStore_Save(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &Store{db: gormDB}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `runs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Save(context.Background(), testSummary())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &Store{db: gormDB}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `runs`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Save(context.Background(), testSummary())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "run-42")
}

func TestStore_Recent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &Store{db: gormDB}

	started := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "run_id", "started_at", "duration_ms",
		"total_scanned", "total_missing", "broken_symlinks",
		"missing", "errors", "warnings",
	}).AddRow(
		1, "run-42", started, int64(83000),
		120, 2, 1,
		`{"Movies":["/media/movies/A/a.mkv"]}`, `[]`, `[]`,
	)

	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(rows)

	summaries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, "run-42", summaries[0].RunID)
	assert.Equal(t, 83*time.Second, summaries[0].Duration)
	assert.Equal(t, []string{"/media/movies/A/a.mkv"}, summaries[0].Missing["Movies"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Latest(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &Store{db: gormDB}

	started := time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "run_id", "started_at", "duration_ms",
		"total_scanned", "total_missing", "broken_symlinks",
		"missing", "errors", "warnings",
	}).AddRow(
		2, "run-43", started, int64(5000),
		10, 0, 0,
		`{}`, `[]`, `[]`,
	)

	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(rows)

	summary, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-43", summary.RunID)
	assert.Equal(t, 10, summary.TotalScanned)
}

func TestStore_LatestEmpty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &Store{db: gormDB}

	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Latest(context.Background())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSummaryRoundTrip(t *testing.T) {
	summary := testSummary()

	run, err := fromSummary(summary)
	require.NoError(t, err)
	assert.Equal(t, "run-42", run.RunID)
	assert.Equal(t, int64(83000), run.DurationMS)

	back, err := toSummary(run)
	require.NoError(t, err)
	assert.Equal(t, summary, back)
}

func TestToSummary_EmptyColumns(t *testing.T) {
	summary, err := toSummary(&Run{RunID: "run-1"})
	require.NoError(t, err)
	assert.Nil(t, summary.Missing)
	assert.Empty(t, summary.Errors)
	assert.Empty(t, summary.Warnings)
}
