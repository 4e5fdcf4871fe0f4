package mpi

import "math"

const (
	// SumTolerance is the allowed absolute deviation of a weight sum
	// from 1.0.
	SumTolerance = 1e-6
)

// Weights maps each declared indicator to its resolved weight.
// A valid set sums to 1.0 within SumTolerance.
type Weights map[string]float64

// Sum returns the total of all indicator weights.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// ResolveWeights turns one of three weighting modes into a final
// per-indicator weight map:
//
//   - domain mode: each domain's weight split equally among its
//     indicators
//   - indicator mode: the supplied weights used directly
//   - equal mode (neither supplied): 1/N for N declared indicators
//
// Supplying both maps is ambiguous and fails with ConfigurationError.
// Unknown domain or indicator names and partial coverage (some, but
// not all, domains or indicators weighted) fail with ValidationError
// regardless of validate. The validate flag only controls the sum
// tolerance check.
func ResolveWeights(dims Dimensions, domainWeights, indicatorWeights map[string]float64, validate bool) (Weights, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if domainWeights != nil && indicatorWeights != nil {
		return nil, &ConfigurationError{Reason: "both domain and indicator weights supplied, specify at most one"}
	}

	switch {
	case domainWeights != nil:
		return resolveDomainWeights(dims, domainWeights, validate)
	case indicatorWeights != nil:
		return resolveIndicatorWeights(dims, indicatorWeights, validate)
	default:
		return resolveEqualWeights(dims), nil
	}
}

func resolveDomainWeights(dims Dimensions, domainWeights map[string]float64, validate bool) (Weights, error) {
	declared := make(map[string]bool, len(dims))
	for _, dom := range dims {
		declared[dom.Name] = true
	}
	for name := range domainWeights {
		if !declared[name] {
			return nil, &ValidationError{Subject: name, Reason: "domain not present in dimensions"}
		}
	}
	for _, dom := range dims {
		if _, ok := domainWeights[dom.Name]; !ok {
			return nil, &ValidationError{Subject: dom.Name, Reason: "domain has no weight, all domains must be weighted or none"}
		}
	}

	if validate {
		var sum float64
		for _, v := range domainWeights {
			sum += v
		}
		if !closeTo(sum, 1) {
			return nil, &ValidationError{Subject: "domain weights", Reason: "weights must sum to 1", Sum: sum, Want: 1}
		}
	}

	w := make(Weights, len(dims.Indicators()))
	for _, dom := range dims {
		per := domainWeights[dom.Name] / float64(len(dom.Indicators))
		for _, ind := range dom.Indicators {
			w[ind] = per
		}
	}
	return w, nil
}

func resolveIndicatorWeights(dims Dimensions, indicatorWeights map[string]float64, validate bool) (Weights, error) {
	indicators := dims.Indicators()
	declared := make(map[string]bool, len(indicators))
	for _, ind := range indicators {
		declared[ind] = true
	}
	for name := range indicatorWeights {
		if !declared[name] {
			return nil, &ValidationError{Subject: name, Reason: "indicator not present in dimensions"}
		}
	}
	for _, ind := range indicators {
		if _, ok := indicatorWeights[ind]; !ok {
			return nil, &ValidationError{Subject: ind, Reason: "indicator has no weight, all indicators must be weighted or none"}
		}
	}

	if validate {
		var sum float64
		for _, v := range indicatorWeights {
			sum += v
		}
		if !closeTo(sum, 1) {
			return nil, &ValidationError{Subject: "indicator weights", Reason: "weights must sum to 1", Sum: sum, Want: 1}
		}
	}

	w := make(Weights, len(indicators))
	for ind, v := range indicatorWeights {
		w[ind] = v
	}
	return w, nil
}

func resolveEqualWeights(dims Dimensions) Weights {
	indicators := dims.Indicators()
	per := 1 / float64(len(indicators))
	w := make(Weights, len(indicators))
	for _, ind := range indicators {
		w[ind] = per
	}
	return w
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= SumTolerance
}
