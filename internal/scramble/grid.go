package scramble

import (
	"fmt"
	"image"
)

// Grid is the block layout of an image.
type Grid struct {
	BlocksX int
	BlocksY int
	BlockW  int
	BlockH  int
}

// Plan sizes a grid of blocksX × blocksY blocks for a width × height image.
//
// Block sizes are floor(width/blocksX) and floor(height/blocksY). The crop
// rectangle is the top-left aligned region covered by whole blocks; pixels to
// its right and below are dropped and never reconstructed.
func Plan(width, height, blocksX, blocksY int) (Grid, error) {
	if blocksX <= 0 || blocksY <= 0 {
		return Grid{}, fmt.Errorf("%w: got %dx%d", ErrInvalidBlocks, blocksX, blocksY)
	}
	if width < blocksX || height < blocksY {
		return Grid{}, fmt.Errorf("%w: %dx%d image, %dx%d blocks",
			ErrImageTooSmall, width, height, blocksX, blocksY)
	}
	return Grid{
		BlocksX: blocksX,
		BlocksY: blocksY,
		BlockW:  max(1, width/blocksX),
		BlockH:  max(1, height/blocksY),
	}, nil
}

// Count returns the number of blocks.
func (g Grid) Count() int { return g.BlocksX * g.BlocksY }

// Width returns the pixel width covered by the grid.
func (g Grid) Width() int { return g.BlockW * g.BlocksX }

// Height returns the pixel height covered by the grid.
func (g Grid) Height() int { return g.BlockH * g.BlocksY }

// CropRect returns the region of the source image the grid covers.
func (g Grid) CropRect() image.Rectangle {
	return image.Rect(0, 0, g.Width(), g.Height())
}

// BlockRect returns the pixel rectangle of block i (row-major).
func (g Grid) BlockRect(i int) image.Rectangle {
	bx, by := i%g.BlocksX, i/g.BlocksX
	x0, y0 := bx*g.BlockW, by*g.BlockH
	return image.Rect(x0, y0, x0+g.BlockW, y0+g.BlockH)
}

// HalfShift returns the half-block offset used for the second, phase-shifted view.
func (g Grid) HalfShift() (dx, dy int) {
	return g.BlockW / 2, g.BlockH / 2
}

// Fits reports whether img already has exactly the grid's dimensions.
func (g Grid) Fits(img *Image) bool {
	return img.Width == g.Width() && img.Height == g.Height()
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d blocks of %dx%d px", g.BlocksX, g.BlocksY, g.BlockW, g.BlockH)
}
