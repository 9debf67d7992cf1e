package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for an encrypted or restored directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// manifestPath accepts a manifest file or a directory containing one.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Mode:             %s\n", m.Mode)
	fmt.Fprintf(w, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(w, "  Size ratio:       %.1f%% of input\n", ratio)
	}
	fmt.Fprintln(w)

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}
	fmt.Fprintln(w, "  Format breakdown:")
	for _, f := range []string{"png", "jpeg", "webp", "avif"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Fprintf(w, "    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Fprintln(w)

	// Per-grid breakdown.
	gridStats := map[string]int{}
	var dual, blended int
	for _, a := range m.Assets {
		gridStats[fmt.Sprintf("%dx%d", a.Grid.BlocksX, a.Grid.BlocksY)]++
		if _, ok := a.Output(manifest.RoleShifted); ok {
			dual++
		}
		if a.Blended {
			blended++
		}
	}
	grids := make([]string, 0, len(gridStats))
	for g := range gridStats {
		grids = append(grids, g)
	}
	sort.Strings(grids)
	fmt.Fprintln(w, "  Grid breakdown:")
	for _, g := range grids {
		fmt.Fprintf(w, "    %7s  %4d assets\n", g, gridStats[g])
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Dual view:        %d / %d assets\n", dual, len(m.Assets))
	if m.Mode == "decrypt" {
		fmt.Fprintf(w, "  Blended:          %d / %d assets\n", blended, len(m.Assets))
	}

	var warnings []string
	for key, a := range m.Assets {
		if len(a.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no outputs", key))
		}
		if a.Cropped() {
			warnings = append(warnings, fmt.Sprintf("asset %q cropped from %dx%d to %dx%d",
				key, a.Source.Width, a.Source.Height, a.Grid.BlockW*a.Grid.BlocksX, a.Grid.BlockH*a.Grid.BlocksY))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
