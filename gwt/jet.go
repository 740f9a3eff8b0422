package gwt

import (
	"math"

	"github.com/gonum/floats"
	"github.com/jvlmdr/go-cv/rimg64"
)

// MinNorm floors the Euclidean norm when normalizing a jet,
// so that a zero jet maps to zero instead of dividing by zero.
const MinNorm = 1e-12

// Jet is the vector of wavelet responses at a single pixel,
// one magnitude and one phase per kernel.
type Jet struct {
	Abs   []float64
	Phase []float64
}

// NewJet creates a zero jet for a family of n kernels.
func NewJet(n int) *Jet {
	return &Jet{Abs: make([]float64, n), Phase: make([]float64, n)}
}

// Len returns the number of kernels.
func (j *Jet) Len() int { return len(j.Abs) }

// Clone creates a copy.
func (j *Jet) Clone() *Jet {
	dst := NewJet(j.Len())
	copy(dst.Abs, j.Abs)
	copy(dst.Phase, j.Phase)
	return dst
}

// Normalize scales the magnitude part to unit Euclidean length.
// Phases are untouched.
func (j *Jet) Normalize() {
	norm := math.Max(floats.Norm(j.Abs, 2), MinNorm)
	floats.Scale(1/norm, j.Abs)
}

// JetImage holds the jet of every pixel: magnitude and phase planes
// with one channel per kernel.
type JetImage struct {
	Abs, Phase *rimg64.Multi
}

// Width returns the width of the image.
func (ji *JetImage) Width() int { return ji.Abs.Width }

// Height returns the height of the image.
func (ji *JetImage) Height() int { return ji.Abs.Height }

// NumKernels returns the number of kernels per jet.
func (ji *JetImage) NumKernels() int { return ji.Abs.Channels }

// At copies the jet at pixel (x, y).
func (ji *JetImage) At(x, y int) *Jet {
	jet := NewJet(ji.NumKernels())
	for j := range jet.Abs {
		jet.Abs[j] = ji.Abs.At(x, y, j)
		jet.Phase[j] = ji.Phase.At(x, y, j)
	}
	return jet
}

// normalizeAt scales the channel vector at pixel (x, y) to unit
// Euclidean length, with the norm floored at MinNorm.
func normalizeAt(f *rimg64.Multi, x, y int) {
	var sum float64
	for j := 0; j < f.Channels; j++ {
		sum += sqr(f.At(x, y, j))
	}
	norm := math.Max(math.Sqrt(sum), MinNorm)
	for j := 0; j < f.Channels; j++ {
		f.Set(x, y, j, f.At(x, y, j)/norm)
	}
}

// AbsJetAt copies the magnitude jet at pixel (x, y) of an
// absolute-value jet image.
func AbsJetAt(f *rimg64.Multi, x, y int) []float64 {
	jet := make([]float64, f.Channels)
	for j := range jet {
		jet[j] = f.At(x, y, j)
	}
	return jet
}
