package scramble

import (
	"errors"
	"fmt"
)

// Params are the primitive parameters a host supplies per invocation.
type Params struct {
	Seed    int64
	Encrypt bool
	BlocksX int
	BlocksY int

	// DualView makes encryption emit a second, half-block-shifted output.
	DualView bool

	// Smooth enables seam smoothing on the single-view decode path.
	Smooth      bool
	SmoothWidth int

	// MaskOffsetX/Y shift the blend weight field on the dual-view decode path.
	MaskOffsetX int
	MaskOffsetY int

	// Workers bounds block-level parallelism (0 = NumCPU).
	Workers int
}

// Validate checks params that can be rejected before looking at pixels.
func (p Params) Validate() error {
	if p.BlocksX <= 0 || p.BlocksY <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidBlocks, p.BlocksX, p.BlocksY)
	}
	return nil
}

// Direction returns the scramble direction selected by Encrypt.
func (p Params) Direction() Direction {
	if p.Encrypt {
		return Encrypt
	}
	return Decrypt
}

// Result is the output of one Node invocation.
type Result struct {
	// Primary is the scrambled or recovered image. Nil when there was
	// nothing to do.
	Primary *Image

	// Shifted is the phase-offset encrypted copy (encrypt with DualView).
	Shifted *Image

	Grid Grid
	Perm *Permutation

	// ShiftX/Y is the offset applied to the shifted view.
	ShiftX, ShiftY int

	// Blended is true when the decode fused two views.
	Blended bool

	// Warnings lists non-fatal problems, such as a rejected second view.
	Warnings []error
}

// Node runs the full transform for one host call.
type Node struct {
	Params Params
}

// NewNode returns a node configured with p.
func NewNode(p Params) *Node { return &Node{Params: p} }

// Process runs the transform on primary and, when decrypting, the optional
// shifted second view.
//
// A nil or empty primary is not an error; the result is empty. Invalid
// block counts and images smaller than the grid are rejected before any
// permutation is generated.
func (n *Node) Process(primary, shifted *Image) (Result, error) {
	p := n.Params
	if primary.IsEmpty() {
		return Result{}, nil
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if primary.Channels != 3 && primary.Channels != 4 {
		return Result{}, fmt.Errorf("%w: got %d", ErrChannels, primary.Channels)
	}
	g, err := Plan(primary.Width, primary.Height, p.BlocksX, p.BlocksY)
	if err != nil {
		return Result{}, err
	}

	perm := ForGrid(p.Seed, g)
	res := Result{Grid: g, Perm: perm}
	res.ShiftX, res.ShiftY = g.HalfShift()

	cropped := fit(primary, g)
	if p.Direction() == Encrypt {
		return n.encrypt(res, cropped)
	}
	return n.decrypt(res, cropped, shifted)
}

func (n *Node) encrypt(res Result, img *Image) (Result, error) {
	out, err := scramble(img, res.Grid, res.Perm, Encrypt, n.Params.Workers)
	if err != nil {
		return Result{}, err
	}
	res.Primary = out
	if !n.Params.DualView {
		return res, nil
	}

	moved := Shift(img, res.ShiftX, res.ShiftY)
	second, err := scramble(moved, res.Grid, res.Perm, Encrypt, n.Params.Workers)
	if err != nil {
		return Result{}, fmt.Errorf("shifted view: %w", err)
	}
	res.Shifted = second
	return res, nil
}

func (n *Node) decrypt(res Result, img, shifted *Image) (Result, error) {
	p := n.Params
	g := res.Grid
	out, err := scramble(img, g, res.Perm, Decrypt, p.Workers)
	if err != nil {
		return Result{}, err
	}

	if !shifted.IsEmpty() {
		blended, err := n.fuse(res, out, img, shifted)
		if err == nil {
			res.Primary = blended
			res.Blended = true
			return res, nil
		}
		res.Warnings = append(res.Warnings, fmt.Errorf("second view rejected: %w", err))
	}

	if p.Smooth {
		out = smooth(out, g, p.SmoothWidth, p.Workers)
	}
	res.Primary = out
	return res, nil
}

// fuse decodes the second view and blends it with the primary decode.
func (n *Node) fuse(res Result, decoded, primary, shifted *Image) (*Image, error) {
	second, err := n.decodeSecond(res, primary, shifted)
	if err != nil {
		return nil, err
	}
	p := n.Params
	return blend(decoded, second, res.Grid.BlockW, res.Grid.BlockH, p.MaskOffsetX, p.MaskOffsetY, p.Workers)
}

// decodeSecond decrypts the shifted view and moves it back onto the
// primary's grid.
func (n *Node) decodeSecond(res Result, primary, shifted *Image) (*Image, error) {
	if shifted.Channels != primary.Channels {
		return nil, fmt.Errorf("%w: %d vs %d channels", ErrShapeMismatch, shifted.Channels, primary.Channels)
	}
	view := fit(shifted, res.Grid)
	if !SameShape(view, primary) {
		return nil, fmt.Errorf("%w: shifted %dx%d, primary %dx%d",
			ErrShapeMismatch, shifted.Width, shifted.Height, primary.Width, primary.Height)
	}
	dec, err := scramble(view, res.Grid, res.Perm, Decrypt, n.Params.Workers)
	if err != nil {
		return nil, err
	}
	return Shift(dec, -res.ShiftX, -res.ShiftY), nil
}

// fit crops img to the grid unless it already matches.
func fit(img *Image, g Grid) *Image {
	if g.Fits(img) {
		return img
	}
	return img.Crop(g.CropRect())
}

// IsConfigError reports whether err is a parameter or sizing rejection.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidBlocks) || errors.Is(err, ErrImageTooSmall)
}
