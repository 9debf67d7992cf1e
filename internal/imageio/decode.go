package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoded is an image file read from disk.
type Decoded struct {
	Image  image.Image
	Format string
	Depth  int
}

// Load opens and decodes the image at path.
func Load(path string) (Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return Decoded{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Decoded{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return Decoded{Image: img, Format: format, Depth: Depth(img)}, nil
}
