package gwt

import (
	"math/rand"
	"testing"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

const eps = 1e-9

func epsEq(want, got, eps float64) bool {
	d := want - got
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func randImage(rng *rand.Rand, width, height int) *rimg64.Image {
	f := rimg64.New(width, height)
	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			f.Set(i, j, rng.NormFloat64())
		}
	}
	return f
}

func testArrayEq(t *testing.T, want, got *fftw.Array2, eps float64) {
	ww, wh := want.Dims()
	gw, gh := got.Dims()
	if ww != gw || wh != gh {
		t.Fatalf("sizes differ: want %dx%d, got %dx%d", ww, wh, gw, gh)
	}
	for u := 0; u < ww; u++ {
		for v := 0; v < wh; v++ {
			x, y := want.At(u, v), got.At(u, v)
			if !epsEq(real(x), real(y), eps) || !epsEq(imag(x), imag(y), eps) {
				t.Errorf("at (%d, %d): want %g, got %g", u, v, x, y)
			}
		}
	}
}
