// Package jetsim compares Gabor jets.
//
// The similarity measures form a small closed family. ScalarProduct
// and Canberra operate on jet magnitudes alone. Disparity, PhaseDiff
// and PhaseDiffCanberra additionally compensate the phase difference
// of each kernel by an estimated spatial displacement between the two
// jets, and therefore need the frequency table of the transform that
// produced the jets.
//
// Every measure scores the self-similarity of a unit-normalized jet
// as exactly one.
package jetsim

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/jvlmdr/go-gabor/gwt"
)

// Type identifies one of the fixed set of similarity measures.
type Type int

const (
	ScalarProduct Type = iota
	Canberra
	Disparity
	PhaseDiff
	PhaseDiffCanberra
)

var typeNames = map[Type]string{
	ScalarProduct:     "scalar-product",
	Canberra:          "canberra",
	Disparity:         "disparity",
	PhaseDiff:         "phase-diff",
	PhaseDiffCanberra: "phase-diff-canberra",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// PhaseBased reports whether the measure uses jet phases and hence
// needs a frequency table.
func (t Type) PhaseBased() bool {
	return t == Disparity || t == PhaseDiff || t == PhaseDiffCanberra
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if s == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown similarity type: %q", s)
}

// Measure computes the similarity of two Gabor jets.
// Phase-based measures keep the frequency table of the transform that
// produced the jets; the table must have the same length and order as
// the jets' kernels, or results are undefined.
// A Measure is not safe for concurrent use: the disparity of the last
// comparison is kept between calls.
type Measure struct {
	typ   Type
	par   gwt.Params
	freqs []gwt.Frequency
	// Displacement estimated by the last phase-based comparison.
	dispY, dispX float64
}

// New creates a similarity measure.
// The transform may be nil for magnitude-only measures; phase-based
// measures require it.
func New(typ Type, t *gwt.Transform) (*Measure, error) {
	if _, ok := typeNames[typ]; !ok {
		return nil, fmt.Errorf("unknown similarity type: %d", int(typ))
	}
	m := &Measure{typ: typ}
	if typ.PhaseBased() {
		if t == nil {
			return nil, fmt.Errorf("%v similarity needs the wavelet transform", typ)
		}
		m.par = t.Params()
		m.freqs = t.Frequencies()
	}
	return m, nil
}

// Type returns the type of the measure.
func (m *Measure) Type() Type { return m.typ }

// Disparity returns the displacement (y, x) estimated during the last
// phase-based comparison.
func (m *Measure) Disparity() (y, x float64) { return m.dispY, m.dispX }

// Similarity scores two jets with magnitudes and phases.
// Magnitude-only measures ignore the phases.
func (m *Measure) Similarity(a, b *gwt.Jet) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("jet lengths differ: %d, %d", a.Len(), b.Len())
	}
	switch m.typ {
	case ScalarProduct, Canberra:
		return m.AbsSimilarity(a.Abs, b.Abs)
	}
	if len(m.freqs) != a.Len() {
		return 0, fmt.Errorf("jet length %d does not match %d kernel frequencies", a.Len(), len(m.freqs))
	}
	conf, diff := confidences(a, b)
	if err := m.estimateDisparity(conf, diff); err != nil {
		return 0, err
	}

	switch m.typ {
	case Disparity:
		var sum float64
		for j := range conf {
			sum += conf[j] * math.Cos(diff[j]-m.dispY*m.freqs[j].Y-m.dispX*m.freqs[j].X)
		}
		return sum, nil
	case PhaseDiff:
		var sum float64
		for j := range diff {
			sum += math.Cos(diff[j] - m.dispY*m.freqs[j].Y - m.dispX*m.freqs[j].X)
		}
		return sum / float64(len(diff)), nil
	case PhaseDiffCanberra:
		var sum float64
		for j := range diff {
			sum += math.Cos(diff[j] - m.dispY*m.freqs[j].Y - m.dispX*m.freqs[j].X)
			sum += canberraTerm(a.Abs[j], b.Abs[j])
		}
		return sum / float64(2*len(diff)), nil
	}
	panic("unreachable")
}

// AbsSimilarity scores two magnitude jets.
// Fails for phase-based measures.
func (m *Measure) AbsSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("jet lengths differ: %d, %d", len(a), len(b))
	}
	switch m.typ {
	case ScalarProduct:
		return floats.Dot(a, b), nil
	case Canberra:
		var sum float64
		for j := range a {
			sum += canberraTerm(a[j], b[j])
		}
		return sum / float64(len(a)), nil
	}
	return 0, errors.New("phase-based measures need jets with phases")
}

// canberraTerm is 1 - |a-b| / (a+b) for non-negative magnitudes.
// Two zero magnitudes are identical and count as fully similar.
func canberraTerm(a, b float64) float64 {
	if s := a + b; s > 0 {
		return 1 - math.Abs(a-b)/s
	}
	return 1
}
