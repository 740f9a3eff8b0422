/*
Package gwt performs the Gabor wavelet transform of an image.

A Transform owns a family of Gabor wavelets, one per combination of
scale and direction.
The wavelets are represented in the frequency domain by sparse kernels,
so that the transform of an image is one forward FFT followed by a
sparse multiply and an inverse FFT per kernel.
The kernels depend on the image resolution and are regenerated
on demand whenever the resolution changes.

The response of all kernels at one pixel forms a Gabor jet,
a vector of magnitudes and phases indexed by kernel.
JetImage and AbsJetImage compute the jet of every pixel at once:

	t, err := gwt.New(gwt.DefaultParams())
	if err != nil {
		log.Fatal(err)
	}
	jets, err := t.JetImage(gwt.FromImage(im), true)

Kernel order is scale-major, direction-minor.
Everything downstream (jet vectors, similarity measures, graphs)
indexes kernels by this order, so it must not be permuted.
*/
package gwt
