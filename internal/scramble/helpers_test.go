package scramble

import (
	"math"
	"testing"
)

// patternImage fills an image with distinct, reproducible samples.
func patternImage(w, h, channels int) *Image {
	img := NewImage(w, h, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				v := float32((x*7+y*13+c*29)%251) / 250
				img.Set(x, y, c, v)
			}
		}
	}
	return img
}

func solidImage(w, h, channels int, v float32) *Image {
	img := NewImage(w, h, channels)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func assertClose(t *testing.T, a, b *Image, tol float64) {
	t.Helper()
	if !SameShape(a, b) {
		t.Fatalf("shape mismatch: %dx%dx%d vs %dx%dx%d",
			a.Width, a.Height, a.Channels, b.Width, b.Height, b.Channels)
	}
	for i := range a.Pix {
		if d := math.Abs(float64(a.Pix[i] - b.Pix[i])); d > tol {
			t.Fatalf("sample %d differs by %g (%g vs %g)", i, d, a.Pix[i], b.Pix[i])
		}
	}
}
