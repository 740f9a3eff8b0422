package graph

import (
	"image"
	"math/rand"
	"testing"

	"github.com/jvlmdr/go-gabor/gwt"
	"github.com/jvlmdr/go-gabor/jetsim"
)

var allTypes = []jetsim.Type{
	jetsim.ScalarProduct,
	jetsim.Canberra,
	jetsim.Disparity,
	jetsim.PhaseDiff,
	jetsim.PhaseDiffCanberra,
}

func defaultTransform(t *testing.T) *gwt.Transform {
	trafo, err := gwt.New(gwt.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return trafo
}

func TestSimilarity_Self(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(3))
	g := randGraph(rng, 5, trafo.NumKernels())
	m := New(make([]image.Point, 5))

	for _, typ := range allTypes {
		sim, err := jetsim.New(typ, trafo)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		got, err := m.Similarity(g, g, sim)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if !epsEq(1, got, eps) {
			t.Errorf("%v: self-similarity %g, want 1", typ, got)
		}
	}
}

func TestSimilarity_NodeCountMismatch(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(4))
	g := randGraph(rng, 4, trafo.NumKernels())
	m := New(make([]image.Point, 5))

	sim, err := jetsim.New(jetsim.ScalarProduct, trafo)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Similarity(g, g, sim); err == nil {
		t.Error("no error for graph smaller than machine")
	}
	if _, err := m.GallerySimilarity([][]*gwt.Jet{g}, g, sim); err == nil {
		t.Error("no error for gallery graph smaller than machine")
	}
}

func TestGallerySimilarity(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(5))
	const nodes = 4
	m := New(make([]image.Point, nodes))

	probe := randGraph(rng, nodes, trafo.NumKernels())
	other := randGraph(rng, nodes, trafo.NumKernels())
	models := [][]*gwt.Jet{other, probe}

	sim, err := jetsim.New(jetsim.ScalarProduct, trafo)
	if err != nil {
		t.Fatal(err)
	}
	// The probe itself is in the gallery, so every node finds a
	// perfect match.
	got, err := m.GallerySimilarity(models, probe, sim)
	if err != nil {
		t.Fatal(err)
	}
	if !epsEq(1, got, eps) {
		t.Errorf("gallery similarity: got %g, want 1", got)
	}

	// Without the probe the score cannot exceed it.
	partial, err := m.GallerySimilarity([][]*gwt.Jet{other}, probe, sim)
	if err != nil {
		t.Fatal(err)
	}
	if partial > got+eps {
		t.Errorf("gallery without probe scores %g, above %g", partial, got)
	}

	if _, err := m.GallerySimilarity(nil, probe, sim); err == nil {
		t.Error("no error for empty gallery")
	}
}

func TestSimilarityAbs_Self(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	const nodes, kernels = 3, 8
	m := New(make([]image.Point, nodes))

	g := make([][]float64, nodes)
	for i := range g {
		jet := randUnitJet(rng, kernels)
		g[i] = jet.Abs
	}

	for _, typ := range []jetsim.Type{jetsim.ScalarProduct, jetsim.Canberra} {
		sim, err := jetsim.New(typ, nil)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		got, err := m.SimilarityAbs(g, g, sim)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if !epsEq(1, got, eps) {
			t.Errorf("%v: self-similarity %g, want 1", typ, got)
		}
		got, err = m.GallerySimilarityAbs([][][]float64{g}, g, sim)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if !epsEq(1, got, eps) {
			t.Errorf("%v: gallery self-similarity %g, want 1", typ, got)
		}
	}
}
