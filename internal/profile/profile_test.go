package profile

import "testing"

func TestGet_Known(t *testing.T) {
	for _, name := range []string{"default", "coarse", "fine", "lossy"} {
		p := Get(name)
		if p.Name != name {
			t.Errorf("%s: name %q", name, p.Name)
		}
		if p.BlocksX <= 0 || p.BlocksY <= 0 || p.SmoothWidth <= 0 {
			t.Errorf("%s: invalid preset %+v", name, p)
		}
		if !Known(name) {
			t.Errorf("%s not known", name)
		}
	}
}

func TestGet_FallsBack(t *testing.T) {
	p := Get("custom")
	if p.Name != "custom" {
		t.Errorf("name %q, want custom", p.Name)
	}
	if p.BlocksX != Get(DefaultName).BlocksX {
		t.Error("unknown profile did not inherit default grid")
	}
	if Known("custom") {
		t.Error("custom reported as built-in")
	}
}

func TestLossy(t *testing.T) {
	if Get("default").Lossy() {
		t.Error("png profile reported lossy")
	}
	if !Get("lossy").Lossy() {
		t.Error("jpeg profile not lossy")
	}
}
