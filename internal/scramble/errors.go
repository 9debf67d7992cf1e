package scramble

import "errors"

// Sentinel errors returned by the transform.
var (
	// ErrInvalidBlocks is returned when blocksX or blocksY is not positive.
	ErrInvalidBlocks = errors.New("block counts must be positive")

	// ErrImageTooSmall is returned when the image cannot hold one pixel per block.
	ErrImageTooSmall = errors.New("image smaller than the block grid")

	// ErrShapeMismatch is returned when two buffers that must agree in size do not.
	ErrShapeMismatch = errors.New("image shape mismatch")

	// ErrChannels is returned for pixel images without 3 or 4 channels.
	ErrChannels = errors.New("pixel images need 3 or 4 channels")
)
