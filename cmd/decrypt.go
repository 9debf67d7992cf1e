package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/scramble"
)

var (
	decryptFlags       gridFlags
	decryptMaskOffsetX int
	decryptMaskOffsetY int
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <input_dir>",
	Short: "Restore images scrambled by encrypt",
	Long: `Restores every scrambled image in the input directory.

When the directory holds the manifest written by encrypt, block counts come
from the manifest, the seed is checked against the recorded permutation
fingerprint, and shifted views are decoded and blended with their primary.
Otherwise every image is decoded on its own and --smooth may be used to
soften block seams.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

func init() {
	decryptFlags.register(decryptCmd, "./restored")
	decryptFlags.registerSmoothing(decryptCmd)
	decryptCmd.Flags().IntVar(&decryptMaskOffsetX, "mask-offset-x", 0, "shift the blend mask horizontally (pixels)")
	decryptCmd.Flags().IntVar(&decryptMaskOffsetY, "mask-offset-y", 0, "shift the blend mask vertically (pixels)")
	rootCmd.AddCommand(decryptCmd)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	prof, seed, workers, err := decryptFlags.resolve(cmd, "decrypt")
	if err != nil {
		return err
	}
	sec := fileConfig.Section("decrypt")
	offX, offY := decryptMaskOffsetX, decryptMaskOffsetY
	if !cmd.Flags().Changed("mask-offset-x") {
		offX = sec.MaskOffsetX
	}
	if !cmd.Flags().Changed("mask-offset-y") {
		offY = sec.MaskOffsetY
	}

	return runPipeline(cmd, runOptions{
		inputDir:    args[0],
		outputDir:   decryptFlags.outDir,
		direction:   scramble.Decrypt,
		profile:     prof,
		seed:        seed,
		workers:     workers,
		maskOffsetX: offX,
		maskOffsetY: offY,
	})
}
