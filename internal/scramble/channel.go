package scramble

// ChannelOrders lists the six orderings of the three color channels.
// Entry k maps output channel c to input channel ChannelOrders[k][c].
var ChannelOrders = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// permuteForward reorders the color samples of one pixel in place.
// Samples past the third (alpha) are left alone.
func permuteForward(px []float32, order uint8) {
	o := ChannelOrders[order]
	in := [3]float32{px[0], px[1], px[2]}
	px[0], px[1], px[2] = in[o[0]], in[o[1]], in[o[2]]
}

// permuteInverse undoes permuteForward for the same order.
func permuteInverse(px []float32, order uint8) {
	o := ChannelOrders[order]
	in := [3]float32{px[0], px[1], px[2]}
	px[o[0]], px[o[1]], px[o[2]] = in[0], in[1], in[2]
}

// PermuteChannels applies channel order k (forward) to a color triple.
func PermuteChannels(rgb [3]float32, k uint8) [3]float32 {
	permuteForward(rgb[:], k)
	return rgb
}

// UnpermuteChannels applies the inverse of channel order k to a color triple.
func UnpermuteChannels(rgb [3]float32, k uint8) [3]float32 {
	permuteInverse(rgb[:], k)
	return rgb
}
