// Package pipeline runs the block scramble over every image in a directory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/BEITAware/TunnelScripts-sub000/internal/encoder"
	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
	"github.com/BEITAware/TunnelScripts-sub000/internal/profile"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

// ErrFingerprint is returned for assets whose recorded permutation does not
// match the one derived from the supplied seed.
var ErrFingerprint = errors.New("permutation fingerprint mismatch (wrong seed or grid)")

// Config holds all parameters for a pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Direction scramble.Direction
	Profile   profile.Profile
	Seed      int64

	MaskOffsetX int
	MaskOffsetY int

	// MaxSize downscales sources whose larger side exceeds it before
	// encryption (0 = keep size).
	MaxSize int

	// Workers bounds the number of images processed at once (0 = NumCPU).
	Workers int

	Logger *log.Logger
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	return NewWithRegistry(cfg, encoder.NewRegistry())
}

// NewWithRegistry creates a pipeline that encodes through registry.
func NewWithRegistry(cfg Config, registry *encoder.Registry) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Pipeline{cfg: cfg, registry: registry}
}

// Run executes the pipeline and returns the manifest of written files.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	logger := p.cfg.Logger
	logger.Debug(p.registry.String())

	sources, prior, err := p.discover()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	logger.Info("found images", "count", len(sources), "mode", p.cfg.Direction)
	if p.seamsUnrecoverable() {
		logger.Warn("lossy format without dual view; block seams will show after decryption",
			"format", p.cfg.Profile.Format)
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if err := ctx.Err(); err != nil {
				results[idx] = processResult{key: s.Key, err: err}
				return
			}
			logger.Debug("processing", "key", s.Key)
			results[idx] = p.process(s, prior)
			if r := results[idx]; r.err == nil {
				logger.Debug("done", "key", s.Key, "outputs", len(r.asset.Outputs), "blended", r.asset.Blended)
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Direction.String(), p.cfg.Profile.Name)
	var errs []error
	for _, r := range results {
		for _, w := range r.warnings {
			logger.Warn(w.Error(), "key", r.key)
		}
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures are reported but do not fail the run.
	if len(errs) > 0 {
		for _, e := range errs {
			logger.Error(e.Error())
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process: %w", len(errs), errors.Join(errs...))
		}
		logger.Warn("some images had errors", "failed", len(errs), "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{Workers: p.cfg.Workers}
	m.ComputeStats()
	return m, nil
}

// seamsUnrecoverable reports an encrypt run whose lossy outputs carry no
// second view to blend with on decode.
func (p *Pipeline) seamsUnrecoverable() bool {
	prof := p.cfg.Profile
	return p.cfg.Direction == scramble.Encrypt && prof.Lossy() && !prof.DualView && !prof.Smooth
}

// discover lists the sources of the run. When decrypting a directory that
// holds a manifest from an earlier encryption, sources and their shifted
// views come from the manifest, which is returned too.
func (p *Pipeline) discover() ([]Source, *manifest.Manifest, error) {
	if p.cfg.Direction == scramble.Decrypt {
		path := filepath.Join(p.cfg.InputDir, manifest.FileName)
		if _, err := os.Stat(path); err == nil {
			m, err := manifest.ReadJSON(path)
			if err != nil {
				return nil, nil, err
			}
			p.cfg.Logger.Debug("using manifest", "path", path, "assets", len(m.Assets))
			return sourcesFromManifest(p.cfg.InputDir, m), m, nil
		}
	}

	scanned, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("scan: %w", err)
	}
	if p.cfg.Direction == scramble.Encrypt {
		return scanned, nil, nil
	}

	// Without a manifest a shifted view cannot be paired with its primary.
	sources := scanned[:0]
	for _, s := range scanned {
		if IsShiftedName(s.RelPath) {
			p.cfg.Logger.Debug("skipping unpaired shifted view", "path", s.RelPath)
			continue
		}
		sources = append(sources, s)
	}
	return sources, nil, nil
}

func sourcesFromManifest(dir string, m *manifest.Manifest) []Source {
	sources := make([]Source, 0, len(m.Assets))
	for key, a := range m.Assets {
		prim, ok := a.Output(manifest.RolePrimary)
		if !ok {
			continue
		}
		s := Source{
			AbsPath: filepath.Join(dir, filepath.FromSlash(prim.Path)),
			RelPath: prim.Path,
			Key:     key,
			Format:  prim.Format,
			Size:    prim.Size,
		}
		if sh, ok := a.Output(manifest.RoleShifted); ok {
			s.ShiftedPath = filepath.Join(dir, filepath.FromSlash(sh.Path))
		}
		sources = append(sources, s)
	}
	return sources
}
