package scramble

import "fmt"

// WeightField computes the single-channel blend weight for a width × height
// image tiled by blockW × blockH blocks.
//
// For each pixel the distance to the nearest seam is taken per axis and
// the smaller one kept. With edge = max(1, min(blockW, blockH)/4) and
// r = dist/edge the weight is 1-r² for r < 1 and 0 beyond. Pixels on a seam
// weigh 1, pixels edge or more away from every seam weigh 0.
func WeightField(width, height, blockW, blockH int) *Image {
	blockW = max(1, blockW)
	blockH = max(1, blockH)
	edge := float32(max(1, min(blockW, blockH)/4))

	w := NewImage(width, height, 1)
	for y := 0; y < height; y++ {
		dy := seamDistance(y, blockH)
		for x := 0; x < width; x++ {
			dist := min(seamDistance(x, blockW), dy)
			ratio := float32(dist) / edge
			if ratio < 1 {
				w.Pix[y*width+x] = 1 - ratio*ratio
			}
		}
	}
	return w
}

// seamDistance returns how many pixels p is from the closest block edge.
func seamDistance(p, block int) int {
	m := p % block
	return min(m, block-1-m)
}

// Blend fuses a, the primary decode, with b, the decode of the shifted view
// realigned onto a's grid. Where a's own seams are, b is away from its seams,
// so the output leans on b there and on a elsewhere:
//
//	out = a*(1-w) + b*w
//
// per color channel, with w from WeightField. A non-zero mask offset shifts
// the weight field (with wraparound) before use. Alpha is copied from a.
func Blend(a, b *Image, blockW, blockH, maskOffsetX, maskOffsetY int) (*Image, error) {
	return blend(a, b, blockW, blockH, maskOffsetX, maskOffsetY, 0)
}

func blend(a, b *Image, blockW, blockH, maskOffsetX, maskOffsetY, workers int) (*Image, error) {
	if !SameShape(a, b) {
		return nil, fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrShapeMismatch,
			a.Width, a.Height, a.Channels, b.Width, b.Height, b.Channels)
	}
	if a.Channels != 3 && a.Channels != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrChannels, a.Channels)
	}

	weights := WeightField(a.Width, a.Height, blockW, blockH)
	if maskOffsetX != 0 || maskOffsetY != 0 {
		weights = Shift(weights, maskOffsetX, maskOffsetY)
	}

	out := a.Clone()
	forEach(a.Height, workers, func(y int) {
		for x := 0; x < a.Width; x++ {
			w := weights.Pix[y*a.Width+x]
			if w == 0 {
				continue
			}
			o := a.Offset(x, y)
			for c := 0; c < 3; c++ {
				out.Pix[o+c] = a.Pix[o+c]*(1-w) + b.Pix[o+c]*w
			}
		}
	})
	return out, nil
}
