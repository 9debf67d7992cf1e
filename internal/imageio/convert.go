// Package imageio converts between image.Image and scramble.Image and
// decodes image files from disk.
package imageio

import (
	"image"
	"image/color"
	"math"

	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray, *image.Gray16:
		return false
	default:
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// Depth returns the per-sample bit depth of img: 16 for the 16-bit
// standard library types, 8 otherwise.
func Depth(img image.Image) int {
	switch img.(type) {
	case *image.NRGBA64, *image.RGBA64, *image.Gray16:
		return 16
	default:
		return 8
	}
}

// FromImage converts img to a normalized float buffer. The buffer has 4
// channels when img has any transparency, 3 otherwise. Color samples are
// stored non-premultiplied.
func FromImage(img image.Image) *scramble.Image {
	b := img.Bounds()
	channels := 3
	if HasAlpha(img) {
		channels = 4
	}
	out := scramble.NewImage(b.Dx(), b.Dy(), channels)

	if src, ok := img.(*image.NRGBA); ok {
		fromNRGBA(src, out)
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			o := out.Offset(x, y)
			out.Pix[o] = float32(c.R) / 0xffff
			out.Pix[o+1] = float32(c.G) / 0xffff
			out.Pix[o+2] = float32(c.B) / 0xffff
			if channels == 4 {
				out.Pix[o+3] = float32(c.A) / 0xffff
			}
		}
	}
	return out
}

// fromNRGBA is the fast path for 8-bit PNG sources.
func fromNRGBA(src *image.NRGBA, out *scramble.Image) {
	for y := 0; y < out.Height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+out.Width*4]
		for x := 0; x < out.Width; x++ {
			o := out.Offset(x, y)
			p := row[x*4 : x*4+4]
			out.Pix[o] = float32(p[0]) / 0xff
			out.Pix[o+1] = float32(p[1]) / 0xff
			out.Pix[o+2] = float32(p[2]) / 0xff
			if out.Channels == 4 {
				out.Pix[o+3] = float32(p[3]) / 0xff
			}
		}
	}
}

// ToImage converts a float buffer back to an image of the given bit depth
// (8 or 16). Three-channel buffers become opaque images.
func ToImage(img *scramble.Image, depth int) image.Image {
	r := image.Rect(0, 0, img.Width, img.Height)
	if depth == 16 {
		out := image.NewNRGBA64(r)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.SetNRGBA64(x, y, color.NRGBA64{
					R: quantize16(img.At(x, y, 0)),
					G: quantize16(img.At(x, y, 1)),
					B: quantize16(img.At(x, y, 2)),
					A: alpha16(img, x, y),
				})
			}
		}
		return out
	}

	out := image.NewNRGBA(r)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i] = quantize8(img.At(x, y, 0))
			out.Pix[i+1] = quantize8(img.At(x, y, 1))
			out.Pix[i+2] = quantize8(img.At(x, y, 2))
			out.Pix[i+3] = 0xff
			if img.Channels == 4 {
				out.Pix[i+3] = quantize8(img.At(x, y, 3))
			}
		}
	}
	return out
}

// Gray converts a single-channel field, such as a blend weight field, to
// an 8-bit grayscale image.
func Gray(field *scramble.Image) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, field.Width, field.Height))
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			out.Pix[out.PixOffset(x, y)] = quantize8(field.At(x, y, 0))
		}
	}
	return out
}

func alpha16(img *scramble.Image, x, y int) uint16 {
	if img.Channels < 4 {
		return 0xffff
	}
	return quantize16(img.At(x, y, 3))
}

func quantize8(v float32) uint8 {
	return uint8(math.Round(float64(clamp01(v)) * 0xff))
}

func quantize16(v float32) uint16 {
	return uint16(math.Round(float64(clamp01(v)) * 0xffff))
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
