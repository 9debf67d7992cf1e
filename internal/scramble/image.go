// Package scramble implements a seed-keyed, reversible permutation of an
// image's spatial blocks and of the color-channel order inside each block.
//
// The pieces, leaf first:
//   - Generate derives a block permutation and per-block channel orders from a seed
//   - Plan sizes the block grid and the crop rectangle for an image
//   - Scramble applies the permutation forward (encrypt) or backward (decrypt)
//   - Shift re-tiles a buffer with wraparound
//   - Smooth blurs narrow windows around block seams after decryption
//   - Blend fuses two decodes taken on half-block-offset grids
//
// Node ties them together the way a host graph invokes the transform.
// Nothing in this package keeps state between calls.
package scramble

import (
	"fmt"
	"image"
)

// Image is an in-memory pixel buffer of normalized float32 samples.
// Samples are interleaved and stored row-major: the sample for channel c of
// pixel (x, y) lives at Pix[(y*Width+x)*Channels+c].
//
// Pixel images carry 3 (color) or 4 (color + alpha) channels. Single-channel
// buffers are used for weight fields.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// NewImage allocates a zeroed image. Channels must be in 1..4.
func NewImage(width, height, channels int) *Image {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	if channels < 1 || channels > 4 {
		panic(fmt.Sprintf("scramble: invalid channel count %d", channels))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// IsEmpty reports whether img is nil or has no pixels.
func (img *Image) IsEmpty() bool {
	return img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) == 0
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// HasAlpha reports whether the fourth channel is present.
func (img *Image) HasAlpha() bool { return img.Channels == 4 }

// Offset returns the index of the first sample of pixel (x, y).
func (img *Image) Offset(x, y int) int {
	return (y*img.Width + x) * img.Channels
}

// At returns sample c of pixel (x, y).
func (img *Image) At(x, y, c int) float32 {
	return img.Pix[img.Offset(x, y)+c]
}

// Set writes sample c of pixel (x, y).
func (img *Image) Set(x, y, c int, v float32) {
	img.Pix[img.Offset(x, y)+c] = v
}

// Row returns the samples of row y.
func (img *Image) Row(y int) []float32 {
	stride := img.Width * img.Channels
	return img.Pix[y*stride : (y+1)*stride]
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pix:      make([]float32, len(img.Pix)),
	}
	copy(out.Pix, img.Pix)
	return out
}

// Crop copies the part of img inside r into a new image anchored at the
// origin. r is clipped to the image bounds.
func (img *Image) Crop(r image.Rectangle) *Image {
	r = r.Intersect(img.Bounds())
	out := NewImage(r.Dx(), r.Dy(), img.Channels)
	if out.IsEmpty() {
		return out
	}
	n := r.Dx() * img.Channels
	for y := 0; y < r.Dy(); y++ {
		src := img.Offset(r.Min.X, r.Min.Y+y)
		copy(out.Row(y), img.Pix[src:src+n])
	}
	return out
}

// SameShape reports whether a and b have equal dimensions and channel count.
func SameShape(a, b *Image) bool {
	return a.Width == b.Width && a.Height == b.Height && a.Channels == b.Channels
}

// Equal reports whether a and b have the same shape and bit-identical samples.
func Equal(a, b *Image) bool {
	if !SameShape(a, b) || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}
