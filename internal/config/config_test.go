package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BEITAware/TunnelScripts-sub000/internal/profile"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockscramble.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
profile = "coarse"
workers = 3
seed = 42
format = "jpeg"
quality = 80

[encrypt]
blocks_x = 16
blocks_y = 12
dual_view = false

[decrypt]
smooth = true
smooth_width = 3
mask_offset_x = 1
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Profile != "coarse" || c.Workers != 3 || c.Seed == nil || *c.Seed != 42 {
		t.Errorf("top level: %+v", c)
	}
	if c.Section("decrypt").MaskOffsetX != 1 {
		t.Errorf("decrypt section: %+v", c.Decrypt)
	}

	enc := c.Apply(profile.Get("coarse"), "encrypt")
	want := profile.Get("coarse")
	want.BlocksX, want.BlocksY = 16, 12
	want.DualView = false
	want.Format, want.Quality = "jpeg", 80
	if diff := cmp.Diff(want, enc); diff != "" {
		t.Errorf("encrypt profile (-want +got):\n%s", diff)
	}

	dec := c.Apply(profile.Get("coarse"), "decrypt")
	if !dec.Smooth || dec.SmoothWidth != 3 || dec.BlocksX != 4 {
		t.Errorf("decrypt profile: %+v", dec)
	}
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := profile.Get("default")
	if diff := cmp.Diff(p, c.Apply(p, "encrypt")); diff != "" {
		t.Errorf("empty config changed profile:\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
	if _, err := Load(writeConfig(t, "profile = ")); err == nil {
		t.Error("malformed toml loaded")
	}
	_, err := Load(writeConfig(t, "[encrypt]\nblock_x = 3\n"))
	if err == nil || !strings.Contains(err.Error(), "block_x") {
		t.Errorf("unknown key: got %v", err)
	}
}
