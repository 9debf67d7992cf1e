package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/BEITAware/TunnelScripts-sub000/internal/imageio"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// tool is a command-line encoder that reads a PNG file and writes its output
// file. It is probed once, lazily.
type tool struct {
	name string
	hint string

	once sync.Once
	path string
}

func (t *tool) available() bool {
	t.once.Do(func() {
		if p, err := exec.LookPath(t.name); err == nil {
			t.path = p
		}
	})
	return t.path != ""
}

// run writes img to a temp PNG, invokes the tool with args(src, dst) and
// returns the bytes of dst.
func (t *tool) run(img image.Image, ext string, args func(src, dst string) []string) ([]byte, error) {
	if !t.available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", t.name, t.hint)
	}

	id := tempCounter.Add(1)
	src, err := os.CreateTemp("", fmt.Sprintf("blockscramble_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(src.Name())
	if err := png.Encode(src, img); err != nil {
		src.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("close temp: %w", err)
	}

	dst, err := os.CreateTemp("", fmt.Sprintf("blockscramble_dst_%d_*.%s", id, ext))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dst.Close()
	defer os.Remove(dst.Name())

	cmd := exec.Command(t.path, args(src.Name(), dst.Name())...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", t.name, err, string(out))
	}
	return os.ReadFile(dst.Name())
}

// WebPEncoder encodes images to WebP by shelling out to cwebp.
type WebPEncoder struct {
	tool tool
}

// NewWebPEncoder returns an encoder backed by cwebp.
func NewWebPEncoder() *WebPEncoder {
	return &WebPEncoder{tool: tool{name: "cwebp", hint: "brew install webp / apt install webp"}}
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return e.tool.available() }
func (e *WebPEncoder) Lossless() bool    { return false }
func (e *WebPEncoder) Alpha() bool       { return true }

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	q := strconv.Itoa(clampQuality(quality))
	return e.tool.run(img, "webp", func(src, dst string) []string {
		return []string{"-q", q, "-m", "6", "-mt", "-quiet", src, "-o", dst}
	})
}

// AVIFEncoder encodes images to AVIF by shelling out to avifenc.
type AVIFEncoder struct {
	tool tool
}

// NewAVIFEncoder returns an encoder backed by avifenc.
func NewAVIFEncoder() *AVIFEncoder {
	return &AVIFEncoder{tool: tool{name: "avifenc", hint: "brew install libavif / apt install libavif-bin"}}
}

func (e *AVIFEncoder) Format() string    { return "avif" }
func (e *AVIFEncoder) Extension() string { return "avif" }
func (e *AVIFEncoder) Lossless() bool    { return false }
func (e *AVIFEncoder) Alpha() bool       { return true }

// Available also requires avifdec, without which decrypt could not read
// the output back.
func (e *AVIFEncoder) Available() bool {
	return e.tool.available() && imageio.CanDecode("avif")
}

func (e *AVIFEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	// avifenc quantizers run 0 (best) to 63.
	q := strconv.Itoa(63 - clampQuality(quality)*63/100)
	return e.tool.run(img, "avif", func(src, dst string) []string {
		return []string{"--min", q, "--max", q, "--speed", "6", "-j", "all", src, dst}
	})
}
