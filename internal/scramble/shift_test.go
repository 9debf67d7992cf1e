package scramble

import "testing"

func TestShift_Identity(t *testing.T) {
	img := patternImage(10, 7, 3)
	for _, d := range [][2]int{{0, 0}, {10, 7}, {-20, 14}} {
		if got := Shift(img, d[0], d[1]); !Equal(got, img) {
			t.Errorf("shift %v: not identity", d)
		}
	}
}

func TestShift_Inverse(t *testing.T) {
	img := patternImage(13, 9, 4)
	for _, d := range [][2]int{{1, 0}, {0, 1}, {5, 3}, {-4, 8}, {27, -11}} {
		moved := Shift(img, d[0], d[1])
		back := Shift(moved, -d[0], -d[1])
		if !Equal(back, img) {
			t.Errorf("shift %v then back: mismatch", d)
		}
	}
}

func TestShift_Wraparound(t *testing.T) {
	img := patternImage(6, 4, 3)
	out := Shift(img, 2, -1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			nx, ny := (x+2)%6, (y+3)%4
			for c := 0; c < 3; c++ {
				if out.At(nx, ny, c) != img.At(x, y, c) {
					t.Fatalf("pixel (%d,%d) not at (%d,%d)", x, y, nx, ny)
				}
			}
		}
	}
	if out == img {
		t.Error("non-zero shift returned the input buffer")
	}
}

func TestShift_SingleChannel(t *testing.T) {
	w := WeightField(8, 8, 4, 4)
	back := Shift(Shift(w, 3, 5), -3, -5)
	if !Equal(back, w) {
		t.Error("weight field shift round trip mismatch")
	}
}
