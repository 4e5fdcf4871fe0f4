package mpi

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats is the population-level poverty summary.
type Stats struct {
	Units     int     `json:"units" yaml:"units"`
	Poor      int     `json:"poor" yaml:"poor"`
	Headcount float64 `json:"headcount_ratio" yaml:"headcount_ratio"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
	MPI       float64 `json:"mpi" yaml:"mpi"`
}

// Contribution is one indicator's share of the overall MPI among the
// poor. Contribution values sum to the MPI; Pct values sum to 100
// whenever MPI > 0.
type Contribution struct {
	Indicator      string  `json:"indicator" yaml:"indicator"`
	Weight         float64 `json:"weight" yaml:"weight"`
	PoorPrevalence float64 `json:"prevalence_among_poor" yaml:"prevalence_among_poor"`
	Contribution   float64 `json:"contribution" yaml:"contribution"`
	Pct            float64 `json:"contribution_pct" yaml:"contribution_pct"`
}

// IndicatorRate is the raw deprivation rate of one indicator across
// the whole population, poor or not.
type IndicatorRate struct {
	Indicator string  `json:"indicator" yaml:"indicator"`
	Rate      float64 `json:"rate" yaml:"rate"`
}

// Aggregate reduces scored records to the population summary and the
// per-indicator contribution table, sorted by contribution
// descending. An empty input fails: H is a ratio and its denominator
// must not be zero. A population without poor units is valid and
// yields A = 0, MPI = 0, and zero contributions.
func Aggregate(scored []ScoredRecord, w Weights) (Stats, []Contribution, error) {
	if len(scored) == 0 {
		return Stats{}, nil, &DataError{Unit: -1, Reason: "no records to aggregate, headcount ratio undefined"}
	}

	poorScores := make([]float64, 0, len(scored))
	for _, s := range scored {
		if s.Poor {
			poorScores = append(poorScores, s.Score)
		}
	}

	st := Stats{
		Units:     len(scored),
		Poor:      len(poorScores),
		Headcount: float64(len(poorScores)) / float64(len(scored)),
	}
	if len(poorScores) > 0 {
		st.Intensity = stat.Mean(poorScores, nil)
	}
	st.MPI = st.Headcount * st.Intensity

	contribs := make([]Contribution, 0, len(w))
	for ind, weight := range w {
		c := Contribution{Indicator: ind, Weight: weight}
		if len(poorScores) > 0 {
			var deprived float64
			for _, s := range scored {
				if s.Poor {
					deprived += s.Values[ind]
				}
			}
			c.PoorPrevalence = deprived / float64(len(poorScores))
			c.Contribution = st.Headcount * weight * c.PoorPrevalence
			if st.MPI > 0 {
				c.Pct = 100 * c.Contribution / st.MPI
			}
		}
		contribs = append(contribs, c)
	}
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].Contribution != contribs[j].Contribution {
			return contribs[i].Contribution > contribs[j].Contribution
		}
		return contribs[i].Indicator < contribs[j].Indicator
	})

	return st, contribs, nil
}

// DeprivationRates computes the fraction of all units deprived in
// each declared indicator, sorted by rate descending. This measures
// prevalence in the whole population, unlike Contribution which
// measures weighted impact on the poor subset.
func DeprivationRates(records []Record, dims Dimensions) ([]IndicatorRate, error) {
	if len(records) == 0 {
		return nil, &DataError{Unit: -1, Reason: "no records, deprivation rates undefined"}
	}

	rates := make([]IndicatorRate, 0, len(dims.Indicators()))
	for _, ind := range dims.Indicators() {
		var deprived float64
		for i, rec := range records {
			v, ok := rec[ind]
			if !ok {
				return nil, &DataError{Unit: i, Indicator: ind, Reason: "missing indicator value"}
			}
			deprived += v
		}
		rates = append(rates, IndicatorRate{
			Indicator: ind,
			Rate:      deprived / float64(len(records)),
		})
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Rate != rates[j].Rate {
			return rates[i].Rate > rates[j].Rate
		}
		return rates[i].Indicator < rates[j].Indicator
	})
	return rates, nil
}
