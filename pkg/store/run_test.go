package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EDKOMANU/mpictl/pkg/mpi"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	err := Init(dbPath)
	require.NoError(t, err)
	db, err := GetDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testReport() *mpi.Report {
	return &mpi.Report{
		Stats: mpi.Stats{Units: 2, Poor: 1, Headcount: 0.5, Intensity: 0.5, MPI: 0.25},
		Weights: []mpi.WeightEntry{
			{Indicator: "Nutrition", Weight: 0.5},
			{Indicator: "Water", Weight: 0.5},
		},
		Rates: []mpi.IndicatorRate{
			{Indicator: "Nutrition", Rate: 0.5},
			{Indicator: "Water", Rate: 0},
		},
		Contributions: []mpi.Contribution{
			{Indicator: "Nutrition", Weight: 0.5, PoorPrevalence: 1, Contribution: 0.25, Pct: 100},
			{Indicator: "Water", Weight: 0.5},
		},
	}
}

func TestInit_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	err := Init(dbPath)
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestInit_EmptyPath(t *testing.T) {
	err := Init("")
	assert.Error(t, err)
}

func TestSaveReport(t *testing.T) {
	db := setupTestDB(t)

	id, err := SaveReport(db, "households.csv", 0.33, testReport())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := GetRun(db, id)
	require.NoError(t, err)
	assert.Equal(t, "households.csv", run.Source)
	assert.Equal(t, 0.33, run.Threshold)
	assert.Equal(t, 0.25, run.Stats.MPI)
	require.Len(t, run.Indicators, 2)
	assert.Equal(t, "Nutrition", run.Indicators[0].Indicator)
	assert.Equal(t, 100.0, run.Indicators[0].Pct)
	assert.Equal(t, 0.5, run.Indicators[0].Rate)
}

func TestSaveReport_NilArgs(t *testing.T) {
	db := setupTestDB(t)

	_, err := SaveReport(nil, "x.csv", 0.33, testReport())
	assert.Error(t, err)

	_, err = SaveReport(db, "x.csv", 0.33, nil)
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	runs, err := ListRuns(db, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	for i := 0; i < 3; i++ {
		_, err := SaveReport(db, "households.csv", 0.33, testReport())
		require.NoError(t, err)
	}

	runs, err = ListRuns(db, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = ListRuns(db, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListRuns_NilDB(t *testing.T) {
	_, err := ListRuns(nil, 10)
	assert.Error(t, err)
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetRun(db, "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetRun_EmptyID(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetRun(db, "")
	assert.Error(t, err)
}
