package gwt

import (
	"fmt"

	"github.com/jvlmdr/go-fftw/fftw"
)

func sqr(x float64) float64 { return x * x }

func mod(a, b int) int {
	if b <= 0 {
		panic("non-positive denominator")
	}
	return ((a % b) + b) % b
}

func zero(x *fftw.Array2) {
	m, n := x.Dims()
	for u := 0; u < m; u++ {
		for v := 0; v < n; v++ {
			x.Set(u, v, 0)
		}
	}
}

func errDims(wantW, wantH, gotW, gotH int) error {
	return fmt.Errorf("sizes differ: want %dx%d, got %dx%d", wantW, wantH, gotW, gotH)
}

func errIfDimsNotEq(a, b *fftw.Array2) error {
	aw, ah := a.Dims()
	bw, bh := b.Dims()
	if aw != bw || ah != bh {
		return errDims(aw, ah, bw, bh)
	}
	return nil
}

func panicIf(err error) {
	if err != nil {
		panic(err)
	}
}
