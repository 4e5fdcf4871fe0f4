// Package dataset reads delimited indicator files into the in-memory
// shape the analysis engine consumes, and writes the result tables
// back out.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/EDKOMANU/mpictl/pkg/mpi"
)

// Read parses a CSV stream with a header row into records. Every cell
// must be numeric; indicator validation (binary values, declared
// columns) is left to the engine.
func Read(r io.Reader) ([]mpi.Record, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty dataset, header row required")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	var records []mpi.Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		rec := make(mpi.Record, len(header))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d, column %q: value %q is not numeric", row, header[i], field)
			}
			rec[header[i]] = v
		}
		records = append(records, rec)
	}
	return records, header, nil
}

// WriteScored writes the original indicator columns plus the computed
// deprivation_score and is_poor columns.
func WriteScored(w io.Writer, indicators []string, scored []mpi.ScoredRecord) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, indicators...), "deprivation_score", "is_poor")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, 0, len(header))
	for _, s := range scored {
		row = row[:0]
		for _, ind := range indicators {
			row = append(row, formatFloat(s.Values[ind]))
		}
		row = append(row, formatFloat(s.Score), strconv.FormatBool(s.Poor))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing scored row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRates writes the whole-population deprivation rate table.
func WriteRates(w io.Writer, rates []mpi.IndicatorRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"indicator", "rate"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rates {
		if err := cw.Write([]string{r.Indicator, formatFloat(r.Rate)}); err != nil {
			return fmt.Errorf("writing rate row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteContributions writes the per-indicator contribution table.
func WriteContributions(w io.Writer, contribs []mpi.Contribution) error {
	cw := csv.NewWriter(w)
	header := []string{"indicator", "weight", "prevalence_among_poor", "contribution", "contribution_pct"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range contribs {
		row := []string{
			c.Indicator,
			formatFloat(c.Weight),
			formatFloat(c.PoorPrevalence),
			formatFloat(c.Contribution),
			formatFloat(c.Pct),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing contribution row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
