package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// avifdec converts AVIF files to PNG. The standard library and x/image
// have no AVIF decoder.
const avifdec = "avifdec"

func init() {
	image.RegisterFormat("avif", "????ftypavif", decodeAVIF, decodeAVIFConfig)
}

// CanDecode reports whether Load can read files of the given format.
// AVIF needs avifdec in PATH.
func CanDecode(format string) bool {
	switch format {
	case "png", "jpeg", "gif", "bmp", "tiff", "webp":
		return true
	case "avif":
		_, err := exec.LookPath(avifdec)
		return err == nil
	}
	return false
}

func decodeAVIF(r io.Reader) (image.Image, error) {
	data, err := runAVIFDec(r)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

func decodeAVIFConfig(r io.Reader) (image.Config, error) {
	data, err := runAVIFDec(r)
	if err != nil {
		return image.Config{}, err
	}
	return png.DecodeConfig(bytes.NewReader(data))
}

// runAVIFDec copies r to a temp file, runs avifdec on it and returns the
// PNG it writes.
func runAVIFDec(r io.Reader) ([]byte, error) {
	path, err := exec.LookPath(avifdec)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH; install with: brew install libavif / apt install libavif-bin", avifdec)
	}

	dir, err := os.MkdirTemp("", "blockscramble_avif_*")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "in.avif")
	dst := filepath.Join(dir, "out.png")
	f, err := os.Create(src)
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("write temp avif: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp: %w", err)
	}

	if out, err := exec.Command(path, src, dst).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", avifdec, err, string(out))
	}
	return os.ReadFile(dst)
}
