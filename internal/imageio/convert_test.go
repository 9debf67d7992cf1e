package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

func gradient(w, h int, alpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if alpha {
				a = uint8(x * 255 / w)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: a})
		}
	}
	return img
}

func TestFromImage_Channels(t *testing.T) {
	if got := FromImage(gradient(8, 8, false)).Channels; got != 3 {
		t.Errorf("opaque: %d channels, want 3", got)
	}
	if got := FromImage(gradient(8, 8, true)).Channels; got != 4 {
		t.Errorf("alpha: %d channels, want 4", got)
	}
}

func TestRoundTrip8(t *testing.T) {
	src := gradient(16, 12, true)
	back := ToImage(FromImage(src), 8).(*image.NRGBA)
	for i := range src.Pix {
		if src.Pix[i] != back.Pix[i] {
			t.Fatalf("byte %d: %d -> %d", i, src.Pix[i], back.Pix[i])
		}
	}
}

func TestRoundTrip16(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 9, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			src.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(x * 7000), G: uint16(y * 9000), B: 12345, A: uint16(60000 + x),
			})
		}
	}
	if Depth(src) != 16 {
		t.Fatalf("depth %d", Depth(src))
	}
	back := ToImage(FromImage(src), 16).(*image.NRGBA64)
	for i := range src.Pix {
		if src.Pix[i] != back.Pix[i] {
			t.Fatalf("byte %d: %d -> %d", i, src.Pix[i], back.Pix[i])
		}
	}
}

func TestToImage_Clamps(t *testing.T) {
	img := scramble.NewImage(1, 1, 3)
	img.Pix[0], img.Pix[1], img.Pix[2] = -0.5, 2, 0.5
	got := ToImage(img, 8).(*image.NRGBA).Pix
	if got[0] != 0 || got[1] != 255 || got[2] != 128 || got[3] != 255 {
		t.Errorf("got %v", got)
	}
}

func TestHasAlpha(t *testing.T) {
	if HasAlpha(image.NewGray(image.Rect(0, 0, 4, 4))) {
		t.Error("gray reported alpha")
	}
	if HasAlpha(image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)) {
		t.Error("YCbCr reported alpha")
	}
	if !HasAlpha(image.NewRGBA(image.Rect(0, 0, 2, 2))) {
		t.Error("transparent RGBA not detected")
	}
}

func TestGray(t *testing.T) {
	g := Gray(scramble.WeightField(8, 8, 8, 8))
	if g.GrayAt(0, 0).Y != 255 || g.GrayAt(3, 3).Y != 0 {
		t.Errorf("seam %d, center %d", g.GrayAt(0, 0).Y, g.GrayAt(3, 3).Y)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradient(10, 10, false)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Format != "png" || d.Depth != 8 {
		t.Errorf("format %q depth %d", d.Format, d.Depth)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file loaded")
	}
}
