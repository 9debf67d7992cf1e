package scramble

// Shift cyclically moves img by (dx, dy) with wraparound: the pixel at
// column x lands on column (x+dx) mod width, and likewise for rows.
// Offsets may be negative or larger than the image.
//
// When both offsets reduce to zero img itself is returned. Otherwise the
// result is a new buffer of the same size and channel count.
func Shift(img *Image, dx, dy int) *Image {
	if img.IsEmpty() {
		return img
	}
	dx = mod(dx, img.Width)
	dy = mod(dy, img.Height)
	if dx == 0 && dy == 0 {
		return img
	}

	out := NewImage(img.Width, img.Height, img.Channels)
	ch := img.Channels
	// Each row splits at the shift point into [0, w-dx) and [w-dx, w).
	tail := (img.Width - dx) * ch
	head := dx * ch
	for y := 0; y < img.Height; y++ {
		src := img.Row(y)
		dst := out.Row((y + dy) % img.Height)
		copy(dst[head:], src[:tail])
		copy(dst[:head], src[tail:])
	}
	return out
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
