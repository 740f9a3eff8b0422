package graph

import (
	"errors"
	"fmt"

	"github.com/jvlmdr/go-gabor/gwt"
	"github.com/jvlmdr/go-gabor/jetsim"
)

func (m *Machine) errIfNumJetsNotEq(n int) error {
	if n != len(m.nodes) {
		return fmt.Errorf("graph has %d jets, machine has %d nodes", n, len(m.nodes))
	}
	return nil
}

// Similarity scores two graphs as the mean jet similarity over nodes.
func (m *Machine) Similarity(model, probe []*gwt.Jet, sim *jetsim.Measure) (float64, error) {
	if err := m.errIfNumJetsNotEq(len(model)); err != nil {
		return 0, err
	}
	if err := m.errIfNumJetsNotEq(len(probe)); err != nil {
		return 0, err
	}
	var total float64
	for i := range model {
		s, err := sim.Similarity(model[i], probe[i])
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total / float64(len(model)), nil
}

// SimilarityAbs scores two magnitude-only graphs as the mean jet
// similarity over nodes.
func (m *Machine) SimilarityAbs(model, probe [][]float64, sim *jetsim.Measure) (float64, error) {
	if err := m.errIfNumJetsNotEq(len(model)); err != nil {
		return 0, err
	}
	if err := m.errIfNumJetsNotEq(len(probe)); err != nil {
		return 0, err
	}
	var total float64
	for i := range model {
		s, err := sim.AbsSimilarity(model[i], probe[i])
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total / float64(len(model)), nil
}

// GallerySimilarity scores a gallery of model graphs against a probe
// graph: per node, the best model jet similarity (floored at zero),
// averaged over nodes.
func (m *Machine) GallerySimilarity(models [][]*gwt.Jet, probe []*gwt.Jet, sim *jetsim.Measure) (float64, error) {
	if len(models) == 0 {
		return 0, errors.New("empty gallery")
	}
	for _, model := range models {
		if err := m.errIfNumJetsNotEq(len(model)); err != nil {
			return 0, err
		}
	}
	if err := m.errIfNumJetsNotEq(len(probe)); err != nil {
		return 0, err
	}
	var total float64
	for i := range probe {
		var best float64
		for _, model := range models {
			s, err := sim.Similarity(model[i], probe[i])
			if err != nil {
				return 0, err
			}
			if s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(probe)), nil
}

// GallerySimilarityAbs is GallerySimilarity for magnitude-only graphs.
func (m *Machine) GallerySimilarityAbs(models [][][]float64, probe [][]float64, sim *jetsim.Measure) (float64, error) {
	if len(models) == 0 {
		return 0, errors.New("empty gallery")
	}
	for _, model := range models {
		if err := m.errIfNumJetsNotEq(len(model)); err != nil {
			return 0, err
		}
	}
	if err := m.errIfNumJetsNotEq(len(probe)); err != nil {
		return 0, err
	}
	var total float64
	for i := range probe {
		var best float64
		for _, model := range models {
			s, err := sim.AbsSimilarity(model[i], probe[i])
			if err != nil {
				return 0, err
			}
			if s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(probe)), nil
}
