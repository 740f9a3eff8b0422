package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

func loadImage(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return im, nil
}

// resizeWidth scales the image to the given width, keeping the aspect
// ratio.
func resizeWidth(im image.Image, width int) image.Image {
	return resize.Resize(uint(width), 0, im, resize.Bilinear)
}
