package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	// fileConfig holds the values loaded from --config.
	fileConfig = &config.Config{}
)

var rootCmd = &cobra.Command{
	Use:   "blockscramble",
	Short: "Reversible, seed-keyed block scrambling for images",
	Long: `blockscramble shuffles an image's blocks and the color-channel order
inside each block with a permutation derived from an integer seed.
The same seed and block counts restore the image exactly.

Encryption can emit a second view scrambled on a half-block-shifted grid;
decrypting both and blending them hides block seams left by lossy formats.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))

		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fileConfig = c
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML file with default settings")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"blockscramble %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
