package mpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Basic(t *testing.T) {
	w := Weights{"Nutrition": 0.5, "Water": 0.5}
	records := []Record{
		{"Nutrition": 1, "Water": 0},
		{"Nutrition": 0, "Water": 0},
		{"Nutrition": 1, "Water": 1},
	}

	scored, err := Score(records, w, 0.33)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, 0.5, scored[0].Score)
	assert.True(t, scored[0].Poor)

	assert.Equal(t, 0.0, scored[1].Score)
	assert.False(t, scored[1].Poor)

	assert.Equal(t, 1.0, scored[2].Score)
	assert.True(t, scored[2].Poor)
}

func TestScore_ThresholdBoundary(t *testing.T) {
	w := Weights{"Nutrition": 0.5, "Water": 0.5}
	records := []Record{{"Nutrition": 1, "Water": 0}}

	// Classification is inclusive: score equal to threshold is poor.
	scored, err := Score(records, w, 0.5)
	require.NoError(t, err)
	assert.True(t, scored[0].Poor)

	scored, err = Score(records, w, 0.51)
	require.NoError(t, err)
	assert.False(t, scored[0].Poor)
}

func TestScore_ScoreRange(t *testing.T) {
	dims := testDims()
	w, err := ResolveWeights(dims, nil, nil, true)
	require.NoError(t, err)

	allDeprived := Record{}
	noneDeprived := Record{}
	for _, ind := range dims.Indicators() {
		allDeprived[ind] = 1
		noneDeprived[ind] = 0
	}

	scored, err := Score([]Record{allDeprived, noneDeprived}, w, DefaultThreshold)
	require.NoError(t, err)
	assert.InDelta(t, 1, scored[0].Score, SumTolerance)
	assert.Equal(t, 0.0, scored[1].Score)
}

func TestScore_MissingIndicator(t *testing.T) {
	w := Weights{"Nutrition": 0.5, "Water": 0.5}
	records := []Record{{"Nutrition": 1}}

	_, err := Score(records, w, 0.33)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Water", derr.Indicator)
	assert.Equal(t, 0, derr.Unit)
}

func TestScore_FractionalValue(t *testing.T) {
	w := Weights{"Nutrition": 0.5, "Water": 0.5}
	records := []Record{{"Nutrition": 0.5, "Water": 0}}

	_, err := Score(records, w, 0.33)
	var derr *DataError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Nutrition", derr.Indicator)
}

func TestScore_ThresholdOutOfRange(t *testing.T) {
	w := Weights{"Nutrition": 1}
	records := []Record{{"Nutrition": 1}}

	for _, threshold := range []float64{-0.1, 1.1} {
		_, err := Score(records, w, threshold)
		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr, "threshold=%v", threshold)
	}
}

func TestScore_Empty(t *testing.T) {
	scored, err := Score(nil, Weights{"Nutrition": 1}, 0.33)
	require.NoError(t, err)
	assert.Empty(t, scored)
}
