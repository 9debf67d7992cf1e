// Package profile holds named presets for block grids and output encoding.
package profile

// Profile defines scrambling and encoding parameters.
type Profile struct {
	Name        string
	BlocksX     int
	BlocksY     int
	DualView    bool   // emit a half-block-shifted second view on encrypt
	Smooth      bool   // smooth seams on single-view decrypt
	SmoothWidth int    // half width of the seam strip in pixels
	Format      string // output format
	Quality     int    // encoding quality 1-100 for lossy formats
}

// DefaultName is the profile used when none is requested.
const DefaultName = "default"

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:        "default",
		BlocksX:     8,
		BlocksY:     8,
		DualView:    true,
		SmoothWidth: 2,
		Format:      "png",
	},
	"coarse": {
		Name:        "coarse",
		BlocksX:     4,
		BlocksY:     4,
		DualView:    true,
		SmoothWidth: 3,
		Format:      "png",
	},
	"fine": {
		Name:        "fine",
		BlocksX:     32,
		BlocksY:     32,
		DualView:    false,
		SmoothWidth: 1,
		Format:      "png",
	},
	"lossy": {
		Name:        "lossy",
		BlocksX:     8,
		BlocksY:     8,
		DualView:    true,
		Smooth:      true,
		SmoothWidth: 2,
		Format:      "jpeg",
		Quality:     90,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Lossy reports whether the profile's format discards detail, in which case
// decoders should smooth seams or blend two views.
func (p Profile) Lossy() bool {
	switch p.Format {
	case "jpeg", "webp", "avif":
		return true
	}
	return false
}
