package jetsim

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/jvlmdr/go-gabor/gwt"
)

const eps = 1e-8

func epsEq(want, got, eps float64) bool {
	return math.Abs(want-got) <= eps
}

func defaultTransform(t *testing.T) *gwt.Transform {
	trafo, err := gwt.New(gwt.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return trafo
}

// randUnitJet generates a jet with strictly positive magnitudes,
// normalized to unit length.
func randUnitJet(rng *rand.Rand, n int) *gwt.Jet {
	jet := gwt.NewJet(n)
	for j := 0; j < n; j++ {
		jet.Abs[j] = 0.1 + rng.Float64()
		jet.Phase[j] = (2*rng.Float64() - 1) * math.Pi
	}
	jet.Normalize()
	return jet
}

var allTypes = []Type{ScalarProduct, Canberra, Disparity, PhaseDiff, PhaseDiffCanberra}

func TestSimilarity_Self(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(1))
	jet := randUnitJet(rng, trafo.NumKernels())

	for _, typ := range allTypes {
		m, err := New(typ, trafo)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		got, err := m.Similarity(jet, jet)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if !epsEq(1, got, eps) {
			t.Errorf("%v: self-similarity %g, want 1", typ, got)
		}
	}
}

func TestSimilarity_LengthMismatch(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(2))
	a := randUnitJet(rng, trafo.NumKernels())
	b := randUnitJet(rng, trafo.NumKernels()-1)

	for _, typ := range allTypes {
		m, err := New(typ, trafo)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if _, err := m.Similarity(a, b); err == nil {
			t.Errorf("%v: no error for mismatched jet lengths", typ)
		}
	}
}

func TestNew_PhaseBasedNeedsTransform(t *testing.T) {
	for _, typ := range []Type{Disparity, PhaseDiff, PhaseDiffCanberra} {
		if _, err := New(typ, nil); err == nil {
			t.Errorf("%v: no error without transform", typ)
		}
	}
	for _, typ := range []Type{ScalarProduct, Canberra} {
		if _, err := New(typ, nil); err != nil {
			t.Errorf("%v: %v", typ, err)
		}
	}
}

func TestAbsSimilarity_PhaseBasedFails(t *testing.T) {
	trafo := defaultTransform(t)
	m, err := New(Disparity, trafo)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AbsSimilarity([]float64{1, 0}, []float64{0, 1}); err == nil {
		t.Error("no error for phase-based measure on magnitude jets")
	}
}

func TestAbsSimilarity_Known(t *testing.T) {
	sp, err := New(ScalarProduct, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sp.AbsSimilarity([]float64{1, 0}, []float64{0.6, 0.8})
	if err != nil {
		t.Fatal(err)
	}
	if !epsEq(0.6, got, eps) {
		t.Errorf("scalar product: got %g, want 0.6", got)
	}

	ca, err := New(Canberra, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err = ca.AbsSimilarity([]float64{1, 3}, []float64{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !epsEq(0.5, got, eps) {
		t.Errorf("canberra: got %g, want 0.5", got)
	}
}

func TestParseType_RoundTrip(t *testing.T) {
	for _, typ := range allTypes {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != typ {
			t.Errorf("parse %q: got %v", typ.String(), got)
		}
	}
	if _, err := ParseType("no-such-measure"); err == nil {
		t.Error("no error for unknown type name")
	}
}

func TestMeasure_SaveLoad(t *testing.T) {
	trafo := defaultTransform(t)
	rng := rand.New(rand.NewSource(3))
	jet := randUnitJet(rng, trafo.NumKernels())
	dir := t.TempDir()

	for _, typ := range allTypes {
		m, err := New(typ, trafo)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		fname := filepath.Join(dir, typ.String()+".json")
		if err := m.Save(fname); err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		got, err := Load(fname)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if got.Type() != typ {
			t.Errorf("type: got %v, want %v", got.Type(), typ)
		}
		s, err := got.Similarity(jet, jet)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		if !epsEq(1, s, eps) {
			t.Errorf("%v after reload: self-similarity %g, want 1", typ, s)
		}
	}
}
