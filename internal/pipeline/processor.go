package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/BEITAware/TunnelScripts-sub000/internal/hasher"
	"github.com/BEITAware/TunnelScripts-sub000/internal/imageio"
	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key      string
	asset    manifest.Asset
	err      error
	warnings []error
}

// process handles a single source: decode, scramble, encode, write.
func (p *Pipeline) process(src Source, prior *manifest.Manifest) processResult {
	result := processResult{key: src.Key}
	cfg := p.cfg

	dec, err := imageio.Load(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}
	img, depth := dec.Image, dec.Depth
	if b := img.Bounds(); cfg.Direction == scramble.Encrypt && cfg.MaxSize > 0 && max(b.Dx(), b.Dy()) > cfg.MaxSize {
		img = imaging.Fit(img, cfg.MaxSize, cfg.MaxSize, imaging.Lanczos)
		depth = 8 // imaging works on 8-bit NRGBA
	}
	origW, origH := img.Bounds().Dx(), img.Bounds().Dy()

	primary := imageio.FromImage(img)
	var shifted *scramble.Image
	if src.ShiftedPath != "" {
		sd, err := imageio.Load(src.ShiftedPath)
		if err != nil {
			result.warnings = append(result.warnings, fmt.Errorf("shifted view: %w", err))
		} else {
			shifted = imageio.FromImage(sd.Image)
		}
	}

	params := scramble.Params{
		Seed:        cfg.Seed,
		Encrypt:     cfg.Direction == scramble.Encrypt,
		BlocksX:     cfg.Profile.BlocksX,
		BlocksY:     cfg.Profile.BlocksY,
		DualView:    cfg.Profile.DualView,
		Smooth:      cfg.Profile.Smooth,
		SmoothWidth: cfg.Profile.SmoothWidth,
		MaskOffsetX: cfg.MaskOffsetX,
		MaskOffsetY: cfg.MaskOffsetY,
		Workers:     1, // images already run in parallel
	}

	var recorded *manifest.Asset
	if prior != nil {
		if a, ok := prior.Assets[src.Key]; ok {
			recorded = &a
			params.BlocksX, params.BlocksY = a.Grid.BlocksX, a.Grid.BlocksY
		}
	}

	res, err := scramble.NewNode(params).Process(primary, shifted)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	if res.Primary == nil {
		result.err = fmt.Errorf("%s: empty image", src.RelPath)
		return result
	}
	result.warnings = append(result.warnings, res.Warnings...)

	fingerprint := hasher.Fingerprint(res.Perm)
	if recorded != nil && recorded.Fingerprint != "" && recorded.Fingerprint != fingerprint {
		result.err = fmt.Errorf("%s: %w", src.Key, ErrFingerprint)
		return result
	}

	srcInfo := manifest.SourceInfo{
		Width:    origW,
		Height:   origH,
		Format:   src.Format,
		Size:     src.Size,
		Depth:    depth,
		HasAlpha: primary.HasAlpha(),
	}
	if recorded != nil {
		srcInfo = recorded.Source
	}

	result.asset = manifest.Asset{
		Source: srcInfo,
		Grid: manifest.GridInfo{
			BlocksX: res.Grid.BlocksX,
			BlocksY: res.Grid.BlocksY,
			BlockW:  res.Grid.BlockW,
			BlockH:  res.Grid.BlockH,
		},
		Fingerprint: fingerprint,
		Blended:     res.Blended,
	}

	out, err := p.write(src.Key, "", res.Primary, depth)
	if err != nil {
		result.err = err
		return result
	}
	out.Role = manifest.RolePrimary
	result.asset.Outputs = append(result.asset.Outputs, out)

	if res.Shifted != nil {
		out, err := p.write(src.Key, "shifted", res.Shifted, depth)
		if err != nil {
			result.err = err
			return result
		}
		out.Role = manifest.RoleShifted
		result.asset.Outputs = append(result.asset.Outputs, out)
		result.asset.ShiftX, result.asset.ShiftY = res.ShiftX, res.ShiftY
	}

	return result
}

// write encodes img and stores it as <key>[.tag].<hash8>.<ext>.
func (p *Pipeline) write(key, tag string, img *scramble.Image, depth int) (manifest.Output, error) {
	enc, err := p.registry.Resolve(p.cfg.Profile.Format, img.HasAlpha())
	if err != nil {
		return manifest.Output{}, err
	}
	if !enc.Lossless() {
		depth = 8
	}

	data, err := enc.Encode(imageio.ToImage(img, depth), p.cfg.Profile.Quality)
	if err != nil {
		return manifest.Output{}, fmt.Errorf("encode %s as %s: %w", key, enc.Format(), err)
	}

	contentHash := hasher.ContentHash(data, 16)
	base := filepath.Base(key)
	if tag != "" {
		base += "." + tag
	}
	fileName := fmt.Sprintf("%s.%s.%s", base, contentHash[:8], enc.Extension())

	keyDir := filepath.Dir(filepath.FromSlash(key))
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))
	outPath := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return manifest.Output{}, fmt.Errorf("create dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return manifest.Output{}, fmt.Errorf("write %s: %w", relPath, err)
	}

	return manifest.Output{
		Format: enc.Format(),
		Width:  img.Width,
		Height: img.Height,
		Size:   int64(len(data)),
		Hash:   contentHash,
		Path:   relPath,
	}, nil
}
