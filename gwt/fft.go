package gwt

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// FromImage converts an image to a complex spatial-domain plane
// using its gray values in [0, 255].
func FromImage(im image.Image) *fftw.Array2 {
	b := im.Bounds()
	x := fftw.NewArray2(b.Dx(), b.Dy())
	for i := 0; i < b.Dx(); i++ {
		for j := 0; j < b.Dy(); j++ {
			g := color.GrayModel.Convert(im.At(b.Min.X+i, b.Min.Y+j)).(color.Gray)
			x.Set(i, j, complex(float64(g.Y), 0))
		}
	}
	return x
}

// FromReal converts a real-valued image to a complex plane.
func FromReal(f *rimg64.Image) *fftw.Array2 {
	x := fftw.NewArray2(f.Width, f.Height)
	for i := 0; i < f.Width; i++ {
		for j := 0; j < f.Height; j++ {
			x.Set(i, j, complex(f.At(i, j), 0))
		}
	}
	return x
}

// ToReal copies the real part of a complex plane into an image.
// Logs if the imaginary component is significant.
func ToReal(x *fftw.Array2) *rimg64.Image {
	m, n := x.Dims()
	f := rimg64.New(m, n)
	var re, im float64
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			a, b := real(x.At(i, j)), imag(x.At(i, j))
			re, im = re+a*a, im+b*b
			f.Set(i, j, a)
		}
	}
	re, im = math.Sqrt(re), math.Sqrt(im)
	const eps = 1e-6
	if (re > eps && im/re > 1e-12) || (re <= eps && im > 1e-6) {
		log.Printf("significant imaginary component (real %g, imag %g)", re, im)
	}
	return f
}

// ifft2To computes the inverse transform of src into dst.
// The result is scaled by 1/(w h), so the round trip through the
// forward transform is the identity.
func ifft2To(dst, src *fftw.Array2) {
	plan := fftw.NewPlan2(src, dst, fftw.Backward, fftw.Estimate)
	defer plan.Destroy()
	plan.Execute()
	m, n := dst.Dims()
	norm := complex(float64(m)*float64(n), 0)
	for u := 0; u < m; u++ {
		for v := 0; v < n; v++ {
			dst.Set(u, v, dst.At(u, v)/norm)
		}
	}
}
