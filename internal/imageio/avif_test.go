package imageio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// avifHeader is the start of an AVIF file: box size, then "ftypavif".
var avifHeader = []byte{0, 0, 0, 0x20, 'f', 't', 'y', 'p', 'a', 'v', 'i', 'f', 0, 0, 0, 0}

func TestCanDecode(t *testing.T) {
	for _, f := range []string{"png", "jpeg", "gif", "bmp", "tiff", "webp"} {
		if !CanDecode(f) {
			t.Errorf("CanDecode(%q) = false", f)
		}
	}
	if CanDecode("heic") {
		t.Error("CanDecode(heic) = true")
	}

	t.Setenv("PATH", t.TempDir())
	if CanDecode("avif") {
		t.Error("CanDecode(avif) = true without avifdec")
	}
}

func TestLoad_AVIFWithoutDecoder(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	path := filepath.Join(t.TempDir(), "x.avif")
	if err := os.WriteFile(path, avifHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	// The file is recognised as AVIF and handed to avifdec.
	if !strings.Contains(err.Error(), avifdec) {
		t.Errorf("error %q does not name %s", err, avifdec)
	}
}
