// Package mpi computes the Multidimensional Poverty Index from a
// table of binary deprivation indicators: per-unit weighted
// deprivation scores, poor/not-poor classification, and the
// population-level headcount ratio (H), intensity (A), MPI = H*A,
// and per-indicator contribution breakdown.
package mpi

// Domain is a named grouping of deprivation indicators, e.g. Health
// covering Nutrition and ChildMortality.
type Domain struct {
	Name       string   `json:"name" yaml:"name"`
	Indicators []string `json:"indicators" yaml:"indicators"`
}

// Dimensions is the ordered set of domains declared for an analysis.
// An indicator belongs to exactly one domain.
type Dimensions []Domain

// Indicators returns all declared indicator names, flattened in
// declaration order.
func (d Dimensions) Indicators() []string {
	names := make([]string, 0, len(d)*2)
	for _, dom := range d {
		names = append(names, dom.Indicators...)
	}
	return names
}

// Validate checks the structural invariants: at least one indicator
// overall, no empty domains, and indicator names unique across all
// domains combined.
func (d Dimensions) Validate() error {
	if len(d.Indicators()) == 0 {
		return &ValidationError{Subject: "dimensions", Reason: "no indicators declared"}
	}
	seenDomain := make(map[string]bool, len(d))
	seenInd := make(map[string]bool)
	for _, dom := range d {
		if dom.Name == "" {
			return &ValidationError{Subject: "dimensions", Reason: "domain with empty name"}
		}
		if seenDomain[dom.Name] {
			return &ValidationError{Subject: dom.Name, Reason: "duplicate domain"}
		}
		seenDomain[dom.Name] = true
		if len(dom.Indicators) == 0 {
			return &ValidationError{Subject: dom.Name, Reason: "domain has no indicators to apply weights to"}
		}
		for _, ind := range dom.Indicators {
			if seenInd[ind] {
				return &ValidationError{Subject: ind, Reason: "indicator declared in more than one domain"}
			}
			seenInd[ind] = true
		}
	}
	return nil
}
