package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BEITAware/TunnelScripts-sub000/internal/profile"
)

// seedEnv names the environment variable consulted when --seed is not set.
const seedEnv = "BLOCKSCRAMBLE_SEED"

var errNoSeed = errors.New("seed required: pass --seed, set " + seedEnv + ", or add seed to the config file")

// gridFlags are shared by encrypt and decrypt.
type gridFlags struct {
	profile     string
	seed        int64
	blocksX     int
	blocksY     int
	format      string
	quality     int
	workers     int
	outDir      string
	smooth      bool
	smoothWidth int
}

func (f *gridFlags) register(cmd *cobra.Command, defaultOut string) {
	fl := cmd.Flags()
	fl.StringVarP(&f.outDir, "out", "o", defaultOut, "output directory")
	fl.StringVarP(&f.profile, "profile", "p", profile.DefaultName, "preset (default, coarse, fine, lossy)")
	fl.Int64VarP(&f.seed, "seed", "s", 0, "permutation seed (or "+seedEnv+")")
	fl.IntVarP(&f.blocksX, "blocks-x", "x", 0, "blocks per row (0 = profile)")
	fl.IntVarP(&f.blocksY, "blocks-y", "y", 0, "blocks per column (0 = profile)")
	fl.StringVarP(&f.format, "format", "f", "", "output format: png, jpeg, webp, avif (default from profile)")
	fl.IntVarP(&f.quality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = profile default)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
}

func (f *gridFlags) registerSmoothing(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.smooth, "smooth", false, "smooth block seams after single-view decryption")
	cmd.Flags().IntVar(&f.smoothWidth, "smooth-width", 0, "half width of the smoothing strip in pixels (0 = profile)")
}

// resolve merges profile, config file and flags, in that order of precedence
// from lowest to highest.
func (f *gridFlags) resolve(cmd *cobra.Command, mode string) (profile.Profile, int64, int, error) {
	name := f.profile
	if !cmd.Flags().Changed("profile") && fileConfig.Profile != "" {
		name = fileConfig.Profile
	}
	if !profile.Known(name) {
		loggerFromContext(cmd.Context()).Warn("unknown profile, using default settings", "profile", name)
	}
	prof := fileConfig.Apply(profile.Get(name), mode)

	if f.blocksX > 0 {
		prof.BlocksX = f.blocksX
	}
	if f.blocksY > 0 {
		prof.BlocksY = f.blocksY
	}
	if f.format != "" {
		prof.Format = f.format
	}
	if f.quality > 0 {
		prof.Quality = f.quality
	}
	if fl := cmd.Flags().Lookup("smooth"); fl != nil && fl.Changed {
		prof.Smooth = f.smooth
	}
	if f.smoothWidth > 0 {
		prof.SmoothWidth = f.smoothWidth
	}

	workers := f.workers
	if workers <= 0 {
		workers = fileConfig.Workers
	}

	seed, err := f.resolveSeed(cmd)
	if err != nil {
		return prof, 0, 0, err
	}
	return prof, seed, workers, nil
}

func (f *gridFlags) resolveSeed(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("seed") {
		return f.seed, nil
	}
	if v, ok := lookupSeedEnv(); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", seedEnv, err)
		}
		return seed, nil
	}
	if fileConfig.Seed != nil {
		return *fileConfig.Seed, nil
	}
	return 0, errNoSeed
}

func lookupSeedEnv() (string, bool) {
	v, ok := os.LookupEnv(seedEnv)
	return v, ok && v != ""
}
