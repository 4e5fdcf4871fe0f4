package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/EDKOMANU/mpictl/pkg/mpi"
)

const (
	insertRunSQL = `INSERT INTO run
		(id, created_at, source, threshold, units, poor, headcount, intensity, mpi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertRunIndicatorSQL = `INSERT INTO run_indicator
		(run_id, indicator, weight, rate, contribution, contribution_pct)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectRunsSQL = `SELECT id, created_at, source, threshold, units, poor, headcount, intensity, mpi
		FROM run
		ORDER BY created_at DESC
		LIMIT ?
	`

	selectRunSQL = `SELECT id, created_at, source, threshold, units, poor, headcount, intensity, mpi
		FROM run
		WHERE id = ?
	`

	selectRunIndicatorsSQL = `SELECT indicator, weight, rate, contribution, contribution_pct
		FROM run_indicator
		WHERE run_id = ?
		ORDER BY contribution DESC, indicator
	`
)

// Run is one persisted analysis summary.
type Run struct {
	ID         string          `json:"id" yaml:"id"`
	CreatedAt  string          `json:"created_at" yaml:"created_at"`
	Source     string          `json:"source" yaml:"source"`
	Threshold  float64         `json:"threshold" yaml:"threshold"`
	Stats      mpi.Stats       `json:"stats" yaml:"stats"`
	Indicators []*RunIndicator `json:"indicators,omitempty" yaml:"indicators,omitempty"`
}

// RunIndicator is one indicator row of a persisted run.
type RunIndicator struct {
	Indicator    string  `json:"indicator" yaml:"indicator"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Rate         float64 `json:"rate" yaml:"rate"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
	Pct          float64 `json:"contribution_pct" yaml:"contribution_pct"`
}

// SaveReport persists the report summary and its per-indicator tables,
// returning the new run ID. The scored records themselves are not
// stored; they belong in the exported CSV.
func SaveReport(db *sql.DB, source string, threshold float64, rep *mpi.Report) (string, error) {
	if db == nil {
		return "", errors.New("database not initialized")
	}
	if rep == nil {
		return "", errors.New("report required")
	}

	id := uuid.NewString()
	created := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(insertRunSQL, id, created, source, threshold,
		rep.Stats.Units, rep.Stats.Poor, rep.Stats.Headcount, rep.Stats.Intensity, rep.Stats.MPI); err != nil {
		return "", errors.Wrap(err, "failed to insert run")
	}

	rates := make(map[string]float64, len(rep.Rates))
	for _, r := range rep.Rates {
		rates[r.Indicator] = r.Rate
	}
	for _, c := range rep.Contributions {
		if _, err := tx.Exec(insertRunIndicatorSQL, id, c.Indicator, c.Weight,
			rates[c.Indicator], c.Contribution, c.Pct); err != nil {
			return "", errors.Wrapf(err, "failed to insert indicator row: %s", c.Indicator)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "failed to commit run")
	}
	return id, nil
}

// ListRuns returns up to limit most recent runs, newest first,
// without their indicator rows.
func ListRuns(db *sql.DB, limit int) ([]*Run, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(selectRunsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	runs := make([]*Run, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its indicator rows.
func GetRun(db *sql.DB, id string) (*Run, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	if id == "" {
		return nil, errors.New("run id required")
	}

	row := db.QueryRow(selectRunSQL, id)
	r := &Run{}
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Threshold,
		&r.Stats.Units, &r.Stats.Poor, &r.Stats.Headcount, &r.Stats.Intensity, &r.Stats.MPI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Errorf("run not found: %s", id)
		}
		return nil, errors.Wrapf(err, "failed to get run: %s", id)
	}

	rows, err := db.Query(selectRunIndicatorsSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query indicators for run: %s", id)
	}
	defer rows.Close()

	for rows.Next() {
		ri := &RunIndicator{}
		if err := rows.Scan(&ri.Indicator, &ri.Weight, &ri.Rate, &ri.Contribution, &ri.Pct); err != nil {
			return nil, errors.Wrap(err, "failed to scan indicator row")
		}
		r.Indicators = append(r.Indicators, ri)
	}
	return r, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	r := &Run{}
	if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Threshold,
		&r.Stats.Units, &r.Stats.Poor, &r.Stats.Headcount, &r.Stats.Intensity, &r.Stats.MPI); err != nil {
		return nil, errors.Wrap(err, "failed to scan run row")
	}
	return r, nil
}
