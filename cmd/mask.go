package cmd

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/imageio"
	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

var (
	maskWidth   int
	maskHeight  int
	maskBlocksX int
	maskBlocksY int
	maskOffsetX int
	maskOffsetY int
	maskPreview int
	maskOut     string
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Render the dual-view blend mask as a grayscale PNG",
	Long: `Writes the weight field decrypt uses to blend two views: white on block
seams, where the shifted view is used, fading to black where the primary
view is kept. Use it to pick --mask-offset-x/-y values.`,
	Args: cobra.NoArgs,
	RunE: runMask,
}

func init() {
	f := maskCmd.Flags()
	f.IntVar(&maskWidth, "width", 512, "image width in pixels")
	f.IntVar(&maskHeight, "height", 512, "image height in pixels")
	f.IntVarP(&maskBlocksX, "blocks-x", "x", 8, "blocks per row")
	f.IntVarP(&maskBlocksY, "blocks-y", "y", 8, "blocks per column")
	f.IntVar(&maskOffsetX, "mask-offset-x", 0, "horizontal mask shift (pixels)")
	f.IntVar(&maskOffsetY, "mask-offset-y", 0, "vertical mask shift (pixels)")
	f.IntVar(&maskPreview, "preview", 0, "scale the output to fit this size (0 = full size)")
	f.StringVarP(&maskOut, "out", "o", "mask.png", "output PNG path")
	rootCmd.AddCommand(maskCmd)
}

func runMask(cmd *cobra.Command, _ []string) error {
	g, err := scramble.Plan(maskWidth, maskHeight, maskBlocksX, maskBlocksY)
	if err != nil {
		return fmt.Errorf("mask: %w", err)
	}
	field := scramble.WeightField(g.Width(), g.Height(), g.BlockW, g.BlockH)
	field = scramble.Shift(field, maskOffsetX, maskOffsetY)

	img := imageio.Gray(field)
	out := imaging.Clone(img)
	if maskPreview > 0 {
		out = imaging.Fit(out, maskPreview, maskPreview, imaging.Box)
	}
	if err := imaging.Save(out, maskOut); err != nil {
		return fmt.Errorf("save mask: %w", err)
	}
	loggerFromContext(cmd.Context()).Info("wrote mask", "path", maskOut, "grid", g.String())
	return nil
}
