package scramble

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Permutation is the keyed block mapping for one grid.
//
// Forward[i] is the encrypted-space position of source block i and
// Inverse[Forward[i]] == i. Channel[d] is the channel order applied to the
// block stored at encrypted-space position d.
type Permutation struct {
	Forward []int
	Inverse []int
	Channel []uint8
}

// newRand seeds the generator. The stream depends on seed alone.
func newRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Generate builds the permutation for count blocks from seed.
//
// Every block draws a random sort key; the stable sort of those keys gives
// the destination order. The channel orders are drawn next from the same
// stream, one per block. count must be positive; Plan rejects grids that
// would produce anything else.
func Generate(seed int64, count int) *Permutation {
	if count <= 0 {
		return &Permutation{}
	}
	rng := newRand(seed)

	type keyed struct {
		key uint64
		idx int
	}
	items := make([]keyed, count)
	for i := range items {
		items[i] = keyed{key: rng.Uint64(), idx: i}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return cmp.Compare(a.key, b.key)
	})

	p := &Permutation{
		Forward: make([]int, count),
		Inverse: make([]int, count),
		Channel: make([]uint8, count),
	}
	for dest, it := range items {
		p.Forward[it.idx] = dest
		p.Inverse[dest] = it.idx
	}
	for i := range p.Channel {
		p.Channel[i] = uint8(rng.IntN(len(ChannelOrders)))
	}
	return p
}

// ForGrid is Generate keyed by the grid's block count.
func ForGrid(seed int64, g Grid) *Permutation {
	return Generate(seed, g.Count())
}

// Len returns the number of blocks covered.
func (p *Permutation) Len() int { return len(p.Forward) }

// Valid reports whether Forward is a bijection, Inverse its inverse, and
// every channel order in range.
func (p *Permutation) Valid() bool {
	n := len(p.Forward)
	if len(p.Inverse) != n || len(p.Channel) != n {
		return false
	}
	seen := make([]bool, n)
	for i, d := range p.Forward {
		if d < 0 || d >= n || seen[d] || p.Inverse[d] != i {
			return false
		}
		seen[d] = true
	}
	for _, c := range p.Channel {
		if int(c) >= len(ChannelOrders) {
			return false
		}
	}
	return true
}
