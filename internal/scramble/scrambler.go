package scramble

import "fmt"

// Direction selects encryption or decryption.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Scramble moves every block of img to its permuted position and reorders
// its color channels, returning a new image.
//
// Encrypt sends source block i to Forward[i] with channel order
// Channel[Forward[i]]. Decrypt sends block i to Inverse[i] and undoes
// channel order Channel[i]. Both directions key the channel order on the
// encrypted-space position, so they consult the same entry for a given block.
// Alpha passes through unchanged.
//
// img must already match the grid (see Grid.Fits) and perm must cover the
// grid's block count.
func Scramble(img *Image, g Grid, perm *Permutation, dir Direction) (*Image, error) {
	return scramble(img, g, perm, dir, 0)
}

func scramble(img *Image, g Grid, perm *Permutation, dir Direction, workers int) (*Image, error) {
	if img.Channels != 3 && img.Channels != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrChannels, img.Channels)
	}
	if !g.Fits(img) {
		return nil, fmt.Errorf("%w: image %dx%d, grid covers %dx%d",
			ErrShapeMismatch, img.Width, img.Height, g.Width(), g.Height())
	}
	if perm.Len() != g.Count() {
		return nil, fmt.Errorf("%w: permutation has %d blocks, grid %d",
			ErrShapeMismatch, perm.Len(), g.Count())
	}

	out := NewImage(img.Width, img.Height, img.Channels)

	// Destination blocks never overlap because Forward and Inverse are
	// bijections, so blocks can be copied concurrently.
	forEach(g.Count(), workers, func(i int) {
		var dst int
		var order uint8
		switch dir {
		case Encrypt:
			dst = perm.Forward[i]
			order = perm.Channel[dst]
		default:
			dst = perm.Inverse[i]
			order = perm.Channel[i]
		}
		copyBlock(out, img, g, i, dst, order, dir)
	})
	return out, nil
}

// copyBlock copies block src of in into block dst of out, reordering color
// channels along the way.
func copyBlock(out, in *Image, g Grid, src, dst int, order uint8, dir Direction) {
	sr := g.BlockRect(src)
	dr := g.BlockRect(dst)
	ch := in.Channels
	n := g.BlockW * ch
	for y := 0; y < g.BlockH; y++ {
		so := in.Offset(sr.Min.X, sr.Min.Y+y)
		do := out.Offset(dr.Min.X, dr.Min.Y+y)
		row := out.Pix[do : do+n]
		copy(row, in.Pix[so:so+n])
		if order == 0 {
			continue // identity order
		}
		for x := 0; x < n; x += ch {
			if dir == Encrypt {
				permuteForward(row[x:x+ch], order)
			} else {
				permuteInverse(row[x:x+ch], order)
			}
		}
	}
}
