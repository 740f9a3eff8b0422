package jetsim

import (
	"fmt"
	"math"

	"github.com/jvlmdr/go-gabor/gwt"
	"github.com/jvlmdr/lin-go/lapack"
	"github.com/jvlmdr/lin-go/mat"
)

// wrapPhase maps a phase to (-pi, pi].
func wrapPhase(phi float64) float64 {
	return phi - 2*math.Pi*math.Round(phi/(2*math.Pi))
}

// confidences computes the per-kernel confidence (product of
// magnitudes) and wrapped phase difference of two jets.
func confidences(a, b *gwt.Jet) (conf, diff []float64) {
	n := a.Len()
	conf = make([]float64, n)
	diff = make([]float64, n)
	for j := 0; j < n; j++ {
		conf[j] = a.Abs[j] * b.Abs[j]
		diff[j] = wrapPhase(a.Phase[j] - b.Phase[j])
	}
	return conf, diff
}

// estimateDisparity solves for the displacement d that best explains
// the phase differences: each kernel votes for its phase difference to
// equal the projection of d onto the kernel frequency, weighted by
// confidence. The normal equations Gamma d = Phi are accumulated
// coarse to fine: starting from the lowest-frequency scale, each pass
// adds one scale's terms, corrects each phase difference by the whole
// cycles implied by the current estimate, and re-solves.
// The accumulated 2x2 system is positive definite whenever two
// non-parallel kernels have non-zero confidence.
func (m *Measure) estimateDisparity(conf, diff []float64) error {
	m.dispY, m.dispX = 0, 0
	var gxx, gxy, gyy, phiX, phiY float64

	j := len(conf) - 1
	for level := m.par.NumberOfScales - 1; level >= 0; level-- {
		for dir := m.par.NumberOfDirections - 1; dir >= 0; dir-- {
			kx, ky := m.freqs[j].X, m.freqs[j].Y
			c, d := conf[j], diff[j]

			gxx += kx * kx * c
			gxy += kx * ky * c
			gyy += ky * ky * c

			// Whole cycles by which this kernel's phase difference is
			// off, given the current estimate.
			n := math.Round((d - m.dispX*kx - m.dispY*ky) / (2 * math.Pi))
			phiX += (d - n*2*math.Pi) * c * kx
			phiY += (d - n*2*math.Pi) * c * ky
			j--
		}

		gamma := mat.New(2, 2)
		gamma.Set(0, 0, gxx)
		gamma.Set(0, 1, gxy)
		gamma.Set(1, 0, gxy)
		gamma.Set(1, 1, gyy)
		d, err := lapack.SolvePosDef(gamma, []float64{phiX, phiY})
		if err != nil {
			return fmt.Errorf("solve disparity system: %v", err)
		}
		m.dispX, m.dispY = d[0], d[1]
	}
	return nil
}

// ShiftPhase estimates the disparity from jet to ref and returns a
// copy of jet with each phase compensated by the disparity along the
// kernel frequency, wrapped back to (-pi, pi].
// The magnitudes are unchanged.
func (m *Measure) ShiftPhase(jet, ref *gwt.Jet) (*gwt.Jet, error) {
	if !m.typ.PhaseBased() {
		return nil, fmt.Errorf("%v similarity does not estimate disparity", m.typ)
	}
	if jet.Len() != ref.Len() {
		return nil, fmt.Errorf("jet lengths differ: %d, %d", jet.Len(), ref.Len())
	}
	if len(m.freqs) != jet.Len() {
		return nil, fmt.Errorf("jet length %d does not match %d kernel frequencies", jet.Len(), len(m.freqs))
	}
	conf, diff := confidences(jet, ref)
	if err := m.estimateDisparity(conf, diff); err != nil {
		return nil, err
	}
	out := jet.Clone()
	for j := range out.Phase {
		out.Phase[j] = wrapPhase(out.Phase[j] - m.dispY*m.freqs[j].Y - m.dispX*m.freqs[j].X)
	}
	return out, nil
}
