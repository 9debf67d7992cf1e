package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BEITAware/TunnelScripts-sub000/internal/hasher"
	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

func sampleManifest(t *testing.T, dir string, seed int64) *manifest.Manifest {
	t.Helper()
	data := []byte("not really a png, only hashed")
	if err := os.WriteFile(filepath.Join(dir, "cat.0123abcd.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	m := manifest.New("encrypt", "default")
	m.Assets["cat"] = manifest.Asset{
		Source:      manifest.SourceInfo{Width: 67, Height: 50, Format: "png", Size: 100, Depth: 8},
		Grid:        manifest.GridInfo{BlocksX: 8, BlocksY: 8, BlockW: 8, BlockH: 6},
		Fingerprint: hasher.Fingerprint(scramble.Generate(seed, 64)),
		Outputs: []manifest.Output{{
			Role:   manifest.RolePrimary,
			Format: "png",
			Width:  64,
			Height: 48,
			Size:   int64(len(data)),
			Hash:   hasher.ContentHash(data, 16),
			Path:   "cat.0123abcd.png",
		}},
	}
	m.ComputeStats()
	return m
}

func TestValidateManifest_Valid(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest(t, dir, 42)

	seed := int64(42)
	if errs := validateManifest(m, dir, &seed, true); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs := validateManifest(m, dir, nil, false); len(errs) != 0 {
		t.Fatalf("unexpected errors without seed: %v", errs)
	}
}

func TestValidateManifest_Problems(t *testing.T) {
	tests := []struct {
		name   string
		seed   int64
		mutate func(m *manifest.Manifest, dir string)
		want   string
	}{
		{
			name: "wrong seed",
			seed: 43,
			want: "seed does not match",
		},
		{
			name: "missing file",
			seed: 42,
			mutate: func(_ *manifest.Manifest, dir string) {
				os.Remove(filepath.Join(dir, "cat.0123abcd.png"))
			},
			want: "file not found",
		},
		{
			name: "tampered file",
			seed: 42,
			mutate: func(_ *manifest.Manifest, dir string) {
				os.WriteFile(filepath.Join(dir, "cat.0123abcd.png"), []byte("not really a png, only HASHED"), 0o644)
			},
			want: "hash mismatch",
		},
		{
			name: "bad version",
			seed: 42,
			mutate: func(m *manifest.Manifest, _ string) {
				m.Version = 99
			},
			want: "unsupported manifest version",
		},
		{
			name: "stats drift",
			seed: 42,
			mutate: func(m *manifest.Manifest, _ string) {
				m.Stats.TotalOutputs = 7
			},
			want: "stats.total_outputs mismatch",
		},
		{
			name: "grid larger than source",
			seed: 42,
			mutate: func(m *manifest.Manifest, _ string) {
				a := m.Assets["cat"]
				a.Source.Height = 5
				m.Assets["cat"] = a
			},
			want: "smaller than",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			m := sampleManifest(t, dir, 42)
			if tt.mutate != nil {
				tt.mutate(m, dir)
			}
			errs := validateManifest(m, dir, &tt.seed, true)
			if !containsError(errs, tt.want) {
				t.Errorf("errors %v do not mention %q", errs, tt.want)
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest(t, dir, 1)

	var buf bytes.Buffer
	printStats(&buf, m)
	out := buf.String()
	for _, want := range []string{"encrypt", "8x8", "png", "0 / 1 assets", "cropped from 67x50 to 64x48"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
