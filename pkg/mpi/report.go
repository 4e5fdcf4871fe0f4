package mpi

// Options configures a single analysis run. The zero value is not
// useful: use DefaultOptions and override as needed.
type Options struct {
	DomainWeights    map[string]float64 `json:"domain_weights,omitempty" yaml:"domain_weights,omitempty"`
	IndicatorWeights map[string]float64 `json:"indicator_weights,omitempty" yaml:"indicator_weights,omitempty"`
	Threshold        float64            `json:"threshold" yaml:"threshold"`
	Validate         bool               `json:"validate" yaml:"validate"`
}

// DefaultOptions returns equal weighting at the standard threshold
// with sum validation on.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Validate:  true,
	}
}

// WeightEntry is one row of the resolved weight table, in indicator
// declaration order.
type WeightEntry struct {
	Indicator string  `json:"indicator" yaml:"indicator"`
	Weight    float64 `json:"weight" yaml:"weight"`
}

// Report bundles the outputs of one analysis run.
type Report struct {
	Stats         Stats           `json:"stats" yaml:"stats"`
	Weights       []WeightEntry   `json:"weights" yaml:"weights"`
	Scored        []ScoredRecord  `json:"scored" yaml:"scored"`
	Rates         []IndicatorRate `json:"deprivation_rates" yaml:"deprivation_rates"`
	Contributions []Contribution  `json:"contributions" yaml:"contributions"`
}

// Analyze runs the full pipeline: resolve weights, score every
// record, and aggregate the population statistics, contribution
// breakdown, and whole-population deprivation rates. It is a pure
// function of its inputs and safe to call concurrently for
// independent datasets.
func Analyze(dims Dimensions, records []Record, opts Options) (*Report, error) {
	w, err := ResolveWeights(dims, opts.DomainWeights, opts.IndicatorWeights, opts.Validate)
	if err != nil {
		return nil, err
	}

	scored, err := Score(records, w, opts.Threshold)
	if err != nil {
		return nil, err
	}

	stats, contribs, err := Aggregate(scored, w)
	if err != nil {
		return nil, err
	}

	rates, err := DeprivationRates(records, dims)
	if err != nil {
		return nil, err
	}

	entries := make([]WeightEntry, 0, len(w))
	for _, ind := range dims.Indicators() {
		entries = append(entries, WeightEntry{Indicator: ind, Weight: w[ind]})
	}

	return &Report{
		Stats:         stats,
		Weights:       entries,
		Scored:        scored,
		Rates:         rates,
		Contributions: contribs,
	}, nil
}
