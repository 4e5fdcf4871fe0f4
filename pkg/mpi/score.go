package mpi

import "fmt"

// DefaultThreshold is the standard OPHI poverty cutoff of one third.
const DefaultThreshold = 1.0 / 3

// Record holds one unit's raw indicator values, 0 (not deprived) or
// 1 (deprived).
type Record map[string]float64

// ScoredRecord is a record plus its weighted deprivation score and
// poverty classification.
type ScoredRecord struct {
	Values Record  `json:"values" yaml:"values"`
	Score  float64 `json:"deprivation_score" yaml:"deprivation_score"`
	Poor   bool    `json:"is_poor" yaml:"is_poor"`
}

// Score computes each record's deprivation score as the weighted sum
// of its deprived indicators and flags it poor when the score reaches
// the threshold. Every weighted indicator must be present in every
// record with a value of exactly 0 or 1; fractional encodings are
// rejected.
func Score(records []Record, w Weights, threshold float64) ([]ScoredRecord, error) {
	if threshold < 0 || threshold > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("threshold %v outside [0,1]", threshold)}
	}

	scored := make([]ScoredRecord, 0, len(records))
	for i, rec := range records {
		var score float64
		for ind, weight := range w {
			v, ok := rec[ind]
			if !ok {
				return nil, &DataError{Unit: i, Indicator: ind, Reason: "missing indicator value"}
			}
			if v != 0 && v != 1 {
				return nil, &DataError{Unit: i, Indicator: ind, Reason: fmt.Sprintf("value %v is not 0 or 1", v)}
			}
			score += weight * v
		}
		scored = append(scored, ScoredRecord{
			Values: rec,
			Score:  score,
			Poor:   score >= threshold,
		})
	}
	return scored, nil
}
