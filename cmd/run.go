package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/manifest"
	"github.com/BEITAware/TunnelScripts-sub000/internal/pipeline"
	"github.com/BEITAware/TunnelScripts-sub000/internal/profile"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

type runOptions struct {
	inputDir    string
	outputDir   string
	direction   scramble.Direction
	profile     profile.Profile
	seed        int64
	workers     int
	maxSize     int
	maskOffsetX int
	maskOffsetY int
}

func runPipeline(cmd *cobra.Command, o runOptions) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	absInput, err := filepath.Abs(o.inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(o.outputDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if absInput == absOutput {
		return fmt.Errorf("output directory must differ from input %s", absInput)
	}

	logger.Debug("settings",
		"input", absInput,
		"output", absOutput,
		"profile", o.profile.Name,
		"blocks", fmt.Sprintf("%dx%d", o.profile.BlocksX, o.profile.BlocksY),
		"format", o.profile.Format,
		"dual_view", o.profile.DualView,
		"smooth", o.profile.Smooth,
	)

	p := pipeline.New(pipeline.Config{
		InputDir:    absInput,
		OutputDir:   absOutput,
		Direction:   o.direction,
		Profile:     o.profile,
		Seed:        o.seed,
		MaskOffsetX: o.maskOffsetX,
		MaskOffsetY: o.maskOffsetY,
		MaxSize:     o.maxSize,
		Workers:     o.workers,
		Logger:      logger,
	})

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s: %w", o.direction, err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	prog.done(o.direction.String()+" complete", "assets", m.Stats.TotalAssets)

	printRunReport(cmd, m)
	return nil
}

func printRunReport(cmd *cobra.Command, m *manifest.Manifest) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Mode:        %s (profile %s)\n", m.Mode, m.Profile)
	fmt.Fprintf(w, "  Assets:      %d\n", m.Stats.TotalAssets)
	fmt.Fprintf(w, "  Outputs:     %d\n", m.Stats.TotalOutputs)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(m.Stats.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(m.Stats.TotalOutputBytes))
	if m.Stats.CroppedAssets > 0 {
		fmt.Fprintf(w, "  Cropped:     %d assets lost border pixels to the block grid\n", m.Stats.CroppedAssets)
	}
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintln(w)

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := min(len(keys), 10)
	if n > 0 {
		fmt.Fprintf(w, "  First %d assets:\n", n)
		for _, k := range keys[:n] {
			a := m.Assets[k]
			fmt.Fprintf(w, "    %-40s %3dx%-3d blocks of %dx%d px%s\n",
				truncKey(k, 40), a.Grid.BlocksX, a.Grid.BlocksY, a.Grid.BlockW, a.Grid.BlockH, assetNote(a))
		}
		fmt.Fprintln(w)
	}

	data, _ := json.Marshal(m)
	fmt.Fprintf(w, "  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Fprintln(w)
}

func assetNote(a manifest.Asset) string {
	switch {
	case a.Blended:
		return "  blended"
	case len(a.Outputs) > 1:
		return "  +shifted"
	}
	return ""
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
