package manifest

// FileName is the manifest's name inside an output directory.
const FileName = "blockscramble.manifest.json"

// Manifest is the top-level record of a blockscramble run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Mode        string           `json:"mode"` // "encrypt" or "decrypt"
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Asset describes one source image and the files produced from it.
type Asset struct {
	Source      SourceInfo `json:"source"`
	Grid        GridInfo   `json:"grid"`
	ShiftX      int        `json:"shift_x,omitempty"` // offset of the shifted view
	ShiftY      int        `json:"shift_y,omitempty"`
	Fingerprint string     `json:"fingerprint"` // xxhash64 of the permutation
	Blended     bool       `json:"blended,omitempty"`
	Outputs     []Output   `json:"outputs"`
}

// SourceInfo holds metadata about the input image.
type SourceInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	Depth    int    `json:"depth"`
	HasAlpha bool   `json:"has_alpha"`
}

// GridInfo records the block layout the asset was processed with.
type GridInfo struct {
	BlocksX int `json:"blocks_x"`
	BlocksY int `json:"blocks_y"`
	BlockW  int `json:"block_w"`
	BlockH  int `json:"block_h"`
}

// Output roles.
const (
	RolePrimary = "primary"
	RoleShifted = "shifted"
)

// Output is one encoded file written for an asset.
type Output struct {
	Role   string `json:"role"`   // "primary" or "shifted"
	Format string `json:"format"` // "png", "jpeg", "webp", "avif"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalOutputs     int   `json:"total_outputs"`
	CroppedAssets    int   `json:"cropped_assets,omitempty"` // sources that lost border pixels
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
