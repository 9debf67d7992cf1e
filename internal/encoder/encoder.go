// Package encoder writes scrambled buffers in standard image formats.
package encoder

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "avif", "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string

	// Lossless reports whether decoding returns the exact samples.
	Lossless() bool

	// Alpha reports whether the format keeps an alpha channel.
	Alpha() bool
}

const defaultQuality = 90

func clampQuality(q int) int {
	if q <= 0 || q > 100 {
		return defaultQuality
	}
	return q
}
