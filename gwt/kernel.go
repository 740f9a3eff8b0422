package gwt

import (
	"image"
	"math"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// DefaultKernelEpsilon is the magnitude below which a frequency bin is
// dropped from the sparse support of a kernel.
const DefaultKernelEpsilon = 1e-10

// Frequency is the center of a Gabor wavelet in the frequency domain.
type Frequency struct {
	Y, X float64
}

// Kernel is a single Gabor wavelet in the frequency domain,
// stored sparsely as the frequency bins whose magnitude exceeds epsilon.
// Coordinates are wrapped to the resolution, following the FFT
// convention that negative frequencies occupy the far half of the plane.
// A Kernel is immutable after construction and safe to share.
type Kernel struct {
	width, height int
	points        []image.Point
	weights       []float64
}

// NewKernel evaluates the frequency-domain Gabor function
//
//	exp(-sigma^2 |omega-k|^2 / (2 |k|^2)) * |k|^powOfK
//
// at every discrete frequency bin of a width x height image,
// where omega is the bin offset scaled by 2 pi / extent,
// and keeps the bins whose magnitude exceeds eps.
// If dcFree, the compensation term
//
//	exp(-sigma^2 (|omega|^2 + |k|^2) / (2 |k|^2))
//
// is subtracted to suppress the zero-frequency response.
func NewKernel(width, height int, k Frequency, sigma, powOfK float64, dcFree bool, eps float64) *Kernel {
	kern := &Kernel{width: width, height: height}
	// Offsets centered at zero. Odd extents include the end point.
	startX, startY := -width/2, -height/2
	endX, endY := width/2+width%2, height/2+height%2
	xFac := 2 * math.Pi / float64(width)
	yFac := 2 * math.Pi / float64(height)
	sigmaSqr := sigma * sigma
	kSqr := k.X*k.X + k.Y*k.Y
	for y := startY; y < endY; y++ {
		omegaY := float64(y) * yFac
		for x := startX; x < endX; x++ {
			omegaX := float64(x) * xFac
			distSqr := sqr(omegaX-k.X) + sqr(omegaY-k.Y)
			val := math.Exp(-sigmaSqr*distSqr/(2*kSqr)) * math.Pow(kSqr, powOfK/2)
			if dcFree {
				omegaSqr := omegaX*omegaX + omegaY*omegaY
				val -= math.Exp(-sigmaSqr * (omegaSqr + kSqr) / (2 * kSqr))
			}
			if math.Abs(val) > eps {
				kern.points = append(kern.points, image.Pt(mod(x, width), mod(y, height)))
				kern.weights = append(kern.weights, val)
			}
		}
	}
	return kern
}

// Width returns the width of the resolution the kernel was generated for.
func (k *Kernel) Width() int { return k.width }

// Height returns the height of the resolution the kernel was generated for.
func (k *Kernel) Height() int { return k.height }

// Size returns the number of frequency bins in the sparse support.
func (k *Kernel) Size() int { return len(k.points) }

// Apply multiplies a frequency-domain image pointwise by the kernel.
// The output is zeroed first, then only the bins in the sparse support
// are written, so the cost is the support size, not the image size.
func (k *Kernel) Apply(src, dst *fftw.Array2) error {
	if err := errIfDimsNotEq(src, dst); err != nil {
		return err
	}
	if w, h := src.Dims(); w != k.width || h != k.height {
		return errDims(k.width, k.height, w, h)
	}
	zero(dst)
	for i, p := range k.points {
		dst.Set(p.X, p.Y, src.At(p.X, p.Y)*complex(k.weights[i], 0))
	}
	return nil
}

// Image materializes the sparse kernel as a dense frequency-domain image.
func (k *Kernel) Image() *rimg64.Image {
	im := rimg64.New(k.width, k.height)
	for i, p := range k.points {
		im.Set(p.X, p.Y, k.weights[i])
	}
	return im
}

// Equal reports whether two kernels have the same resolution and the
// same ordered support, with a tolerance of 1e-8 per weight.
func (k *Kernel) Equal(other *Kernel) bool {
	const eps = 1e-8
	if k.width != other.width || k.height != other.height {
		return false
	}
	if len(k.points) != len(other.points) {
		return false
	}
	for i := range k.points {
		if k.points[i] != other.points[i] {
			return false
		}
		if math.Abs(k.weights[i]-other.weights[i]) > eps {
			return false
		}
	}
	return true
}
