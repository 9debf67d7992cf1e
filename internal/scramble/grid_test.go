package scramble

import (
	"errors"
	"image"
	"testing"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name           string
		w, h, bx, by   int
		blockW, blockH int
	}{
		{"exact", 64, 64, 4, 4, 16, 16},
		{"remainder", 100, 70, 8, 3, 12, 23},
		{"one block", 5, 7, 1, 1, 5, 7},
		{"pixel blocks", 4, 3, 4, 3, 1, 1},
		{"wide", 1000, 10, 7, 2, 142, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Plan(tt.w, tt.h, tt.bx, tt.by)
			if err != nil {
				t.Fatalf("plan: %v", err)
			}
			if g.BlockW != tt.blockW || g.BlockH != tt.blockH {
				t.Errorf("block %dx%d, want %dx%d", g.BlockW, g.BlockH, tt.blockW, tt.blockH)
			}
			r := g.CropRect()
			if r.Min != (image.Point{}) {
				t.Errorf("crop not top-left aligned: %v", r)
			}
			if r.Dx() != g.BlockW*tt.bx || r.Dx() > tt.w || tt.w-r.Dx() >= g.BlockW {
				t.Errorf("crop width %d for image %d, block %d", r.Dx(), tt.w, g.BlockW)
			}
			if r.Dy() != g.BlockH*tt.by || r.Dy() > tt.h || tt.h-r.Dy() >= g.BlockH {
				t.Errorf("crop height %d for image %d, block %d", r.Dy(), tt.h, g.BlockH)
			}
		})
	}
}

func TestPlan_Rejects(t *testing.T) {
	tests := []struct {
		name         string
		w, h, bx, by int
		want         error
	}{
		{"zero blocks", 64, 64, 0, 4, ErrInvalidBlocks},
		{"negative blocks", 64, 64, 4, -1, ErrInvalidBlocks},
		{"narrow image", 3, 64, 4, 4, ErrImageTooSmall},
		{"short image", 64, 3, 4, 4, ErrImageTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.w, tt.h, tt.bx, tt.by)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGrid_BlockRect(t *testing.T) {
	g := Grid{BlocksX: 3, BlocksY: 2, BlockW: 10, BlockH: 5}
	if got, want := g.BlockRect(0), image.Rect(0, 0, 10, 5); got != want {
		t.Errorf("block 0: %v, want %v", got, want)
	}
	if got, want := g.BlockRect(4), image.Rect(10, 5, 20, 10); got != want {
		t.Errorf("block 4: %v, want %v", got, want)
	}
	if dx, dy := g.HalfShift(); dx != 5 || dy != 2 {
		t.Errorf("half shift %d,%d", dx, dy)
	}
}

func TestImage_Crop(t *testing.T) {
	img := patternImage(10, 8, 4)
	c := img.Crop(image.Rect(2, 1, 6, 4))
	if c.Width != 4 || c.Height != 3 {
		t.Fatalf("crop size %dx%d", c.Width, c.Height)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			for ch := 0; ch < 4; ch++ {
				if c.At(x, y, ch) != img.At(x+2, y+1, ch) {
					t.Fatalf("pixel (%d,%d,%d) mismatch", x, y, ch)
				}
			}
		}
	}
	c.Set(0, 0, 0, 42)
	if img.At(2, 1, 0) == 42 {
		t.Error("crop aliases source buffer")
	}
}
