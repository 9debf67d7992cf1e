// Package config loads optional TOML defaults for the CLI.
//
// A config file looks like:
//
//	profile = "lossy"
//	workers = 4
//
//	[encrypt]
//	blocks_x = 16
//	blocks_y = 12
//	dual_view = true
//
//	[decrypt]
//	smooth = true
//	smooth_width = 3
//
// Every field is optional; unset fields leave the profile value alone.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/BEITAware/TunnelScripts-sub000/internal/profile"
)

// Config is the decoded file.
type Config struct {
	Profile string  `toml:"profile"`
	Workers int     `toml:"workers"`
	Seed    *int64  `toml:"seed"`
	Format  string  `toml:"format"`
	Quality int     `toml:"quality"`
	Encrypt Section `toml:"encrypt"`
	Decrypt Section `toml:"decrypt"`
}

// Section holds per-command grid and post-processing overrides.
type Section struct {
	BlocksX     int   `toml:"blocks_x"`
	BlocksY     int   `toml:"blocks_y"`
	DualView    *bool `toml:"dual_view"`
	Smooth      *bool `toml:"smooth"`
	SmoothWidth int   `toml:"smooth_width"`
	MaskOffsetX int   `toml:"mask_offset_x"`
	MaskOffsetY int   `toml:"mask_offset_y"`
	MaxSize     int   `toml:"max_size"`
}

// Load reads a TOML config file. An empty path yields an empty Config.
func Load(path string) (*Config, error) {
	var c Config
	if path == "" {
		return &c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("parse config %s: unknown key %q", path, undec[0].String())
	}
	return &c, nil
}

// Apply overlays the file's values onto p, using the section for mode
// ("encrypt" or "decrypt").
func (c *Config) Apply(p profile.Profile, mode string) profile.Profile {
	if c.Format != "" {
		p.Format = c.Format
	}
	if c.Quality > 0 {
		p.Quality = c.Quality
	}
	s := c.Section(mode)
	if s.BlocksX > 0 {
		p.BlocksX = s.BlocksX
	}
	if s.BlocksY > 0 {
		p.BlocksY = s.BlocksY
	}
	if s.DualView != nil {
		p.DualView = *s.DualView
	}
	if s.Smooth != nil {
		p.Smooth = *s.Smooth
	}
	if s.SmoothWidth > 0 {
		p.SmoothWidth = s.SmoothWidth
	}
	return p
}

// Section returns the section for mode.
func (c *Config) Section(mode string) Section {
	if mode == "decrypt" {
		return c.Decrypt
	}
	return c.Encrypt
}
