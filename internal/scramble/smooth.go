package scramble

// Smooth blurs thin strips around the interior seams of g to soften
// compression artifacts left at block edges after decryption.
//
// Each strip is 2*width pixels across the seam and spans the image along
// it. Inside a strip a box kernel of 2*width+1 taps runs across the seam
// only; samples are taken from inside the strip, clamped at its edges.
// Seams on the image border have no strip. When the blocks are narrower
// than the kernel the strips for that orientation are skipped. width is
// clamped to at least 1. Alpha is not blurred.
//
// Horizontal seams are processed first, then vertical seams; within one
// orientation strips are independent.
func Smooth(img *Image, g Grid, width int) *Image {
	return smooth(img, g, width, 0)
}

func smooth(img *Image, g Grid, width, workers int) *Image {
	width = max(1, width)
	kernel := 2*width + 1

	out := img.Clone()
	if g.BlockH >= kernel && g.BlocksY > 1 {
		src := out.Clone()
		forEach(g.BlocksY-1, workers, func(i int) {
			blurAcrossRows(out, src, (i+1)*g.BlockH, width)
		})
	}
	if g.BlockW >= kernel && g.BlocksX > 1 {
		src := out.Clone()
		forEach(g.BlocksX-1, workers, func(i int) {
			blurAcrossCols(out, src, (i+1)*g.BlockW, width)
		})
	}
	return out
}

// blurAcrossRows blurs the strip [seam-width, seam+width) vertically.
func blurAcrossRows(out, src *Image, seam, width int) {
	y0, y1 := seam-width, seam+width
	colors := min(src.Channels, 3)
	norm := 1 / float32(2*width+1)
	for y := y0; y < y1; y++ {
		for x := 0; x < src.Width; x++ {
			o := out.Offset(x, y)
			for c := 0; c < colors; c++ {
				var sum float32
				for k := -width; k <= width; k++ {
					sy := clamp(y+k, y0, y1-1)
					sum += src.At(x, sy, c)
				}
				out.Pix[o+c] = sum * norm
			}
		}
	}
}

// blurAcrossCols blurs the strip [seam-width, seam+width) horizontally.
func blurAcrossCols(out, src *Image, seam, width int) {
	x0, x1 := seam-width, seam+width
	colors := min(src.Channels, 3)
	norm := 1 / float32(2*width+1)
	for y := 0; y < src.Height; y++ {
		for x := x0; x < x1; x++ {
			o := out.Offset(x, y)
			for c := 0; c < colors; c++ {
				var sum float32
				for k := -width; k <= width; k++ {
					sx := clamp(x+k, x0, x1-1)
					sum += src.At(sx, y, c)
				}
				out.Pix[o+c] = sum * norm
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
