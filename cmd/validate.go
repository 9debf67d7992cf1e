package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/hasher"
	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

var (
	validateSeed     int64
	validateSkipHash bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a manifest and check the referenced files",
	Long: `Checks manifest structure, that every referenced file exists with the
recorded size and xxhash, and, when --seed is given, that the seed
reproduces each asset's permutation fingerprint.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Int64VarP(&validateSeed, "seed", "s", 0, "verify permutation fingerprints with this seed")
	validateCmd.Flags().BoolVar(&validateSkipHash, "skip-hash", false, "check sizes only, do not hash files")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &validateSeed
	}
	errs := validateManifest(m, filepath.Dir(path), seed, !validateSkipHash)

	w := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, %d outputs, all files present\n", m.Stats.TotalAssets, m.Stats.TotalOutputs)
		if seed != nil {
			fmt.Fprintln(w, "  ✓ Seed matches every permutation fingerprint")
		}
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string, seed *int64, hashFiles bool) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if m.Mode != "encrypt" && m.Mode != "decrypt" {
		errs = append(errs, fmt.Sprintf("unknown mode %q", m.Mode))
	}

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]
		g := asset.Grid
		if g.BlocksX <= 0 || g.BlocksY <= 0 || g.BlockW <= 0 || g.BlockH <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid grid %+v", key, g))
		} else if _, err := scramble.Plan(asset.Source.Width, asset.Source.Height, g.BlocksX, g.BlocksY); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		}
		if asset.Fingerprint == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing fingerprint", key))
		} else if seed != nil && g.BlocksX > 0 && g.BlocksY > 0 {
			if fp := hasher.Fingerprint(scramble.Generate(*seed, g.BlocksX*g.BlocksY)); fp != asset.Fingerprint {
				errs = append(errs, fmt.Sprintf("asset %q: seed does not match fingerprint", key))
			}
		}
		if len(asset.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no outputs", key))
		}
		if _, ok := asset.Output(manifest.RolePrimary); !ok {
			errs = append(errs, fmt.Sprintf("asset %q: no primary output", key))
		}

		seenPaths := map[string]bool{}
		for i, o := range asset.Outputs {
			if o.Role != manifest.RolePrimary && o.Role != manifest.RoleShifted {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: unknown role %q", key, i, o.Role))
			}
			if o.Width != g.BlockW*g.BlocksX || o.Height != g.BlockH*g.BlocksY {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: %dx%d does not match grid", key, i, o.Width, o.Height))
			}
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: missing path", key, i))
				continue
			}
			if seenPaths[o.Path] {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: duplicate path %q", key, i, o.Path))
			}
			seenPaths[o.Path] = true

			fullPath := filepath.Join(baseDir, filepath.FromSlash(o.Path))
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: file not found: %s", key, i, o.Path))
				continue
			}
			if o.Size > 0 && info.Size() != o.Size {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, o.Size, info.Size()))
			}
			if hashFiles && o.Hash != "" {
				h, err := hasher.FileHash(fullPath, len(o.Hash))
				if err != nil {
					errs = append(errs, fmt.Sprintf("asset %q output[%d]: hash: %v", key, i, err))
				} else if h != o.Hash {
					errs = append(errs, fmt.Sprintf("asset %q output[%d]: hash mismatch: manifest=%s, disk=%s",
						key, i, o.Hash, h))
				}
			}
		}
	}

	// Verify stats consistency.
	outputCount := 0
	for _, a := range m.Assets {
		outputCount += len(a.Outputs)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	return errs
}
