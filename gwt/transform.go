package gwt

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// Params configures a family of Gabor wavelets.
// The field names match the keys of the stored representation.
type Params struct {
	// Width (standard deviation) of the wavelets.
	Sigma float64 `json:"Sigma"`
	// Power of |k| used as a prefactor.
	PowOfK float64 `json:"PowOfK"`
	// Highest frequency, at scale zero.
	KMax float64 `json:"KMax"`
	// Factor between the frequencies of consecutive scales.
	KFac float64 `json:"KFac"`
	// Suppress the zero-frequency response of each wavelet?
	DCFree             bool `json:"DCfree"`
	NumberOfScales     int  `json:"NumberOfScales"`
	NumberOfDirections int  `json:"NumberOfDirections"`
}

// DefaultParams returns the parameterization used by the standard
// 40-wavelet family: 5 scales, 8 directions, sigma 2 pi, frequencies
// from pi/2 descending by 1/sqrt(2).
func DefaultParams() Params {
	return Params{
		Sigma:              2 * math.Pi,
		PowOfK:             0,
		KMax:               math.Pi / 2,
		KFac:               1 / math.Sqrt2,
		DCFree:             true,
		NumberOfScales:     5,
		NumberOfDirections: 8,
	}
}

// Transform computes the Gabor wavelet transform of an image.
// It keeps a bank of sparse kernels for the most recent resolution and
// regenerates them when the resolution changes.
// Not safe for concurrent use: the kernel bank and scratch planes are
// shared between calls.
type Transform struct {
	par   Params
	freqs []Frequency
	// Kernel bank for the current resolution. Empty until first use.
	kernels       []*Kernel
	width, height int
	// Scratch planes sized to the current resolution.
	freqIm, temp, temp2 *fftw.Array2
}

// New validates the parameters and derives the kernel frequencies.
// Kernels themselves are generated lazily, per resolution.
func New(par Params) (*Transform, error) {
	if par.NumberOfScales < 1 || par.NumberOfDirections < 1 {
		return nil, fmt.Errorf("invalid wavelet family: %d scales, %d directions", par.NumberOfScales, par.NumberOfDirections)
	}
	if par.Sigma <= 0 {
		return nil, fmt.Errorf("non-positive sigma: %g", par.Sigma)
	}
	if par.KMax <= 0 || par.KFac <= 0 {
		return nil, fmt.Errorf("non-positive frequency parameters: k_max %g, k_fac %g", par.KMax, par.KFac)
	}
	return &Transform{par: par, freqs: kernelFrequencies(par)}, nil
}

// kernelFrequencies derives the wavelet center frequencies in
// scale-major, direction-minor order.
func kernelFrequencies(par Params) []Frequency {
	freqs := make([]Frequency, 0, par.NumberOfScales*par.NumberOfDirections)
	kAbs := par.KMax
	for s := 0; s < par.NumberOfScales; s++ {
		for d := 0; d < par.NumberOfDirections; d++ {
			angle := math.Pi * float64(d) / float64(par.NumberOfDirections)
			freqs = append(freqs, Frequency{Y: kAbs * math.Sin(angle), X: kAbs * math.Cos(angle)})
		}
		kAbs *= par.KFac
	}
	return freqs
}

// Params returns the configuration of the transform.
func (t *Transform) Params() Params { return t.par }

// NumKernels returns the number of wavelets in the family.
func (t *Transform) NumKernels() int { return len(t.freqs) }

// Frequencies returns the wavelet center frequencies in kernel order.
// The returned slice must not be modified.
func (t *Transform) Frequencies() []Frequency { return t.freqs }

// Kernel returns the generated kernel with the given index.
// The bank must have been generated, either explicitly or by a
// previous transform.
func (t *Transform) Kernel(i int) *Kernel {
	if i < 0 || i >= len(t.kernels) {
		panic(fmt.Sprintf("kernel index %d out of range (%d kernels generated)", i, len(t.kernels)))
	}
	return t.kernels[i]
}

// GenerateKernels regenerates the kernel bank and scratch planes for
// the given resolution. No-op if the bank already matches.
// Called implicitly by the transform operations.
func (t *Transform) GenerateKernels(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.kernels = make([]*Kernel, 0, len(t.freqs))
	for _, f := range t.freqs {
		t.kernels = append(t.kernels, NewKernel(width, height, f, t.par.Sigma, t.par.PowOfK, t.par.DCFree, DefaultKernelEpsilon))
	}
	t.width, t.height = width, height
	t.freqIm = fftw.NewArray2(width, height)
	t.temp = fftw.NewArray2(width, height)
	t.temp2 = fftw.NewArray2(width, height)
}

// KernelImages materializes the kernel bank as dense frequency-domain
// images, one per kernel. Returns nil if no bank has been generated.
func (t *Transform) KernelImages() []*rimg64.Image {
	if len(t.kernels) == 0 {
		return nil
	}
	ims := make([]*rimg64.Image, len(t.kernels))
	for j, kern := range t.kernels {
		ims[j] = kern.Image()
	}
	return ims
}

// Apply computes the wavelet transform of a spatial-domain image and
// returns one complex spatial-domain plane per kernel, in kernel order.
func (t *Transform) Apply(im *fftw.Array2) ([]*fftw.Array2, error) {
	w, h := im.Dims()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("empty image: %dx%d", w, h)
	}
	t.GenerateKernels(w, h)
	fftw.FFT2To(t.freqIm, im)
	layers := make([]*fftw.Array2, len(t.kernels))
	for j, kern := range t.kernels {
		// Sizes match by construction.
		panicIf(kern.Apply(t.freqIm, t.temp))
		layers[j] = fftw.NewArray2(w, h)
		ifft2To(layers[j], t.temp)
	}
	return layers, nil
}

// JetImage computes the Gabor jet of every pixel, magnitudes and
// phases. If normalize, the magnitude vector of each jet is scaled to
// unit length after all kernels have been applied.
func (t *Transform) JetImage(im *fftw.Array2, normalize bool) (*JetImage, error) {
	w, h := im.Dims()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("empty image: %dx%d", w, h)
	}
	t.GenerateKernels(w, h)
	fftw.FFT2To(t.freqIm, im)
	ji := &JetImage{
		Abs:   rimg64.NewMulti(w, h, len(t.kernels)),
		Phase: rimg64.NewMulti(w, h, len(t.kernels)),
	}
	for j, kern := range t.kernels {
		panicIf(kern.Apply(t.freqIm, t.temp2))
		ifft2To(t.temp, t.temp2)
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				v := t.temp.At(x, y)
				ji.Abs.Set(x, y, j, cmplx.Abs(v))
				ji.Phase.Set(x, y, j, cmplx.Phase(v))
			}
		}
	}
	if normalize {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				normalizeAt(ji.Abs, x, y)
			}
		}
	}
	return ji, nil
}

// AbsJetImage computes the magnitude part of the Gabor jet of every
// pixel, one channel per kernel.
func (t *Transform) AbsJetImage(im *fftw.Array2, normalize bool) (*rimg64.Multi, error) {
	w, h := im.Dims()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("empty image: %dx%d", w, h)
	}
	t.GenerateKernels(w, h)
	fftw.FFT2To(t.freqIm, im)
	jets := rimg64.NewMulti(w, h, len(t.kernels))
	for j, kern := range t.kernels {
		panicIf(kern.Apply(t.freqIm, t.temp2))
		ifft2To(t.temp, t.temp2)
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				jets.Set(x, y, j, cmplx.Abs(t.temp.At(x, y)))
			}
		}
	}
	if normalize {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				normalizeAt(jets, x, y)
			}
		}
	}
	return jets, nil
}

// Equal reports whether two transforms have the same configuration,
// with a tolerance of 1e-8 on the real parameters.
// Kernels are not compared; they are a deterministic function of the
// configuration and the resolution.
func (t *Transform) Equal(u *Transform) bool {
	const eps = 1e-8
	return math.Abs(t.par.Sigma-u.par.Sigma) <= eps &&
		math.Abs(t.par.PowOfK-u.par.PowOfK) <= eps &&
		math.Abs(t.par.KMax-u.par.KMax) <= eps &&
		math.Abs(t.par.KFac-u.par.KFac) <= eps &&
		t.par.DCFree == u.par.DCFree &&
		t.par.NumberOfScales == u.par.NumberOfScales &&
		t.par.NumberOfDirections == u.par.NumberOfDirections
}
