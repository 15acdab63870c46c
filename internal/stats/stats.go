package stats

import (
	"errors"
	"math"
)

// #region errors

// ErrEmptyInput is returned when an aggregate is requested over no values.
// Callers must surface it rather than substituting a default.
var ErrEmptyInput = errors.New("stats: empty input")

// #endregion errors

// #region mean

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// MeanAbs returns the mean of absolute values.
func MeanAbs(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, v := range values {
		sum += math.Abs(v)
	}
	return sum / float64(len(values)), nil
}

// #endregion mean

// #region pairwise

// PairwiseMeanAbsDiff returns the mean absolute difference over all
// unordered pairs of values. Requires at least two values.
func PairwiseMeanAbsDiff(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, ErrEmptyInput
	}
	var sum float64
	var pairs int
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			sum += math.Abs(values[i] - values[j])
			pairs++
		}
	}
	return sum / float64(pairs), nil
}

// #endregion pairwise
