package encoder

import (
	"fmt"
	"strings"
)

// Registry holds all available encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(
		&PNGEncoder{},
		&JPEGEncoder{},
		NewWebPEncoder(),
		NewAVIFEncoder(),
	)
}

// NewRegistryWith registers the given encoders. Only available ones are kept.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalize(format)]
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	// Maintain priority order.
	for _, f := range []string{"png", "webp", "avif", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve picks the encoder for a requested format. Unavailable formats,
// and formats that would drop a needed alpha channel, fall back to PNG.
func (r *Registry) Resolve(requested string, hasAlpha bool) (Encoder, error) {
	if enc := r.Get(requested); enc != nil && (!hasAlpha || enc.Alpha()) {
		return enc, nil
	}
	if enc := r.encoders["png"]; enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("no encoder for %q", requested)
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "jpg" {
		f = "jpeg"
	}
	return f
}
