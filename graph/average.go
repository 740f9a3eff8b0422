package graph

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/jvlmdr/go-gabor/gwt"
)

// Average combines a set of graphs of identical topology into one.
// Each response is accumulated as a complex number in polar form, so
// phases are averaged on the circle with magnitude weighting rather
// than as raw angles. Each averaged jet is normalized to unit length,
// so averaging a single graph of unit jets is the identity.
func Average(graphs [][]*gwt.Jet) ([]*gwt.Jet, error) {
	if len(graphs) == 0 {
		return nil, errors.New("no graphs to average")
	}
	numNodes := len(graphs[0])
	if numNodes == 0 {
		return nil, errors.New("empty graph")
	}
	n := graphs[0][0].Len()
	for p, g := range graphs {
		if len(g) != numNodes {
			return nil, fmt.Errorf("graph %d has %d nodes, graph 0 has %d", p, len(g), numNodes)
		}
		for i, jet := range g {
			if jet.Len() != n {
				return nil, fmt.Errorf("jet %d of graph %d has length %d, want %d", i, p, jet.Len(), n)
			}
		}
	}

	out := make([]*gwt.Jet, numNodes)
	sum := make([]complex128, n)
	for i := 0; i < numNodes; i++ {
		for j := range sum {
			sum[j] = 0
		}
		for _, g := range graphs {
			jet := g[i]
			for j := 0; j < n; j++ {
				sum[j] += cmplx.Rect(jet.Abs[j], jet.Phase[j])
			}
		}
		jet := gwt.NewJet(n)
		for j := 0; j < n; j++ {
			jet.Abs[j] = cmplx.Abs(sum[j])
			jet.Phase[j] = cmplx.Phase(sum[j])
		}
		jet.Normalize()
		out[i] = jet
	}
	return out, nil
}
