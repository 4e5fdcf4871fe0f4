package mpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EndToEnd(t *testing.T) {
	dims := Dimensions{
		{Name: "Health", Indicators: []string{"Nutrition"}},
		{Name: "LivingStandards", Indicators: []string{"Water"}},
	}
	records := []Record{
		{"Nutrition": 1, "Water": 0},
		{"Nutrition": 0, "Water": 0},
	}
	opts := DefaultOptions()
	opts.Threshold = 0.33

	rep, err := Analyze(dims, records, opts)
	require.NoError(t, err)

	assert.Equal(t, 0.5, rep.Stats.Headcount)
	assert.Equal(t, 0.5, rep.Stats.Intensity)
	assert.Equal(t, 0.25, rep.Stats.MPI)

	require.Len(t, rep.Scored, 2)
	assert.True(t, rep.Scored[0].Poor)
	assert.False(t, rep.Scored[1].Poor)

	// Weight table follows declaration order.
	require.Len(t, rep.Weights, 2)
	assert.Equal(t, "Nutrition", rep.Weights[0].Indicator)
	assert.Equal(t, 0.5, rep.Weights[0].Weight)
	assert.Equal(t, "Water", rep.Weights[1].Indicator)

	require.Len(t, rep.Contributions, 2)
	assert.Equal(t, "Nutrition", rep.Contributions[0].Indicator)
	assert.InDelta(t, 100, rep.Contributions[0].Pct, SumTolerance)
}

func TestAnalyze_DomainWeights(t *testing.T) {
	dims := testDims()
	opts := DefaultOptions()
	opts.DomainWeights = map[string]float64{
		"Health":          1.0 / 3,
		"Education":       1.0 / 3,
		"LivingStandards": 1.0 / 3,
	}

	rec := Record{}
	for _, ind := range dims.Indicators() {
		rec[ind] = 1
	}

	rep, err := Analyze(dims, []Record{rec}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.Stats.Headcount)
	assert.InDelta(t, 1, rep.Stats.Intensity, SumTolerance)
}

func TestAnalyze_PropagatesWeightError(t *testing.T) {
	opts := DefaultOptions()
	opts.DomainWeights = map[string]float64{"Nowhere": 1}

	_, err := Analyze(testDims(), []Record{{"Nutrition": 1}}, opts)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAnalyze_PropagatesDataError(t *testing.T) {
	dims := Dimensions{{Name: "Health", Indicators: []string{"Nutrition"}}}

	_, err := Analyze(dims, nil, DefaultOptions())
	var derr *DataError
	require.ErrorAs(t, err, &derr)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.InDelta(t, 1.0/3, opts.Threshold, SumTolerance)
	assert.True(t, opts.Validate)
	assert.Nil(t, opts.DomainWeights)
	assert.Nil(t, opts.IndicatorWeights)
}
