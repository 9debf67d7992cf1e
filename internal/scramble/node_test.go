package scramble

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNode_RoundTrip64(t *testing.T) {
	img := patternImage(64, 64, 4)
	p := Params{Seed: 12345, Encrypt: true, BlocksX: 4, BlocksY: 4}

	enc, err := NewNode(p).Process(img, nil)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if enc.Grid.BlockW != 16 || enc.Grid.BlockH != 16 {
		t.Fatalf("grid %v", enc.Grid)
	}
	if Equal(enc.Primary, img) {
		t.Fatal("encryption left image unchanged")
	}

	p.Encrypt = false
	dec, err := NewNode(p).Process(enc.Primary, nil)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !Equal(dec.Primary, img) {
		t.Fatal("round trip mismatch")
	}

	other := p
	other.Seed = 99999
	res, err := NewNode(other).Process(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(res.Perm.Forward, enc.Perm.Forward) {
		t.Error("seed 99999 produced the same forward map as 12345")
	}
}

func TestNode_CropsNonDivisible(t *testing.T) {
	img := patternImage(70, 45, 3)
	p := Params{Seed: 1, Encrypt: true, BlocksX: 4, BlocksY: 4}
	enc, err := NewNode(p).Process(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if enc.Primary.Width != 68 || enc.Primary.Height != 44 {
		t.Fatalf("cropped to %dx%d, want 68x44", enc.Primary.Width, enc.Primary.Height)
	}
	p.Encrypt = false
	dec, err := NewNode(p).Process(enc.Primary, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(dec.Primary, img.Crop(enc.Grid.CropRect())) {
		t.Error("decoded image differs from cropped source")
	}
}

func TestNode_DualView(t *testing.T) {
	img := patternImage(64, 48, 4)
	p := Params{Seed: 555, Encrypt: true, BlocksX: 4, BlocksY: 3, DualView: true}
	enc, err := NewNode(p).Process(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if enc.Shifted == nil {
		t.Fatal("dual view produced no shifted output")
	}
	if enc.ShiftX != 8 || enc.ShiftY != 8 {
		t.Errorf("shift %d,%d, want 8,8", enc.ShiftX, enc.ShiftY)
	}

	p.Encrypt = false
	dec, err := NewNode(p).Process(enc.Primary, enc.Shifted)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Blended {
		t.Fatalf("expected blended decode, warnings: %v", dec.Warnings)
	}
	assertClose(t, dec.Primary, img, 1e-6)
}

func TestNode_ShiftedViewIsIndependent(t *testing.T) {
	img := patternImage(32, 32, 3)
	p := Params{Seed: 9, Encrypt: true, BlocksX: 4, BlocksY: 4, DualView: true}
	enc, err := NewNode(p).Process(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Decoding the second view alone and moving it back recovers the source.
	dec, err := Scramble(enc.Shifted, enc.Grid, enc.Perm, Decrypt)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(Shift(dec, -enc.ShiftX, -enc.ShiftY), img) {
		t.Error("second view does not decode to the source")
	}
}

func TestNode_MismatchedSecondViewFallsBack(t *testing.T) {
	img := patternImage(32, 32, 3)
	p := Params{Seed: 3, Encrypt: true, BlocksX: 4, BlocksY: 4}
	enc, err := NewNode(p).Process(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Encrypt = false
	dec, err := NewNode(p).Process(enc.Primary, patternImage(20, 32, 3))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Blended {
		t.Error("mismatched second view was blended")
	}
	if len(dec.Warnings) != 1 || !errors.Is(dec.Warnings[0], ErrShapeMismatch) {
		t.Errorf("warnings = %v", dec.Warnings)
	}
	if !Equal(dec.Primary, img) {
		t.Error("single-view fallback did not recover the image")
	}
}

func TestNode_SmoothPath(t *testing.T) {
	img := patternImage(40, 40, 3)
	p := Params{Seed: 8, Encrypt: true, BlocksX: 4, BlocksY: 4}
	enc, _ := NewNode(p).Process(img, nil)

	p.Encrypt = false
	p.Smooth = true
	p.SmoothWidth = 2
	dec, err := NewNode(p).Process(enc.Primary, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Smooth(img, enc.Grid, 2)
	if !Equal(dec.Primary, want) {
		t.Error("smoothed decode differs from smoothing the source")
	}
}

func TestNode_EmptyInput(t *testing.T) {
	n := NewNode(Params{BlocksX: 0})
	for _, img := range []*Image{nil, NewImage(0, 0, 3)} {
		res, err := n.Process(img, nil)
		if err != nil {
			t.Errorf("empty input returned error %v", err)
		}
		if res.Primary != nil {
			t.Error("empty input produced output")
		}
	}
}

func TestNode_ConfigErrors(t *testing.T) {
	img := patternImage(8, 8, 3)
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"zero blocks", Params{BlocksX: 0, BlocksY: 2}, ErrInvalidBlocks},
		{"too many blocks", Params{BlocksX: 9, BlocksY: 2}, ErrImageTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNode(tt.p).Process(img, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if !IsConfigError(err) {
				t.Error("not classified as config error")
			}
		})
	}
	if _, err := NewNode(Params{BlocksX: 2, BlocksY: 2}).Process(patternImage(8, 8, 2), nil); !errors.Is(err, ErrChannels) {
		t.Errorf("two channels: got %v", err)
	}
}
