package ft2pently

// Frame is one slot of a song's order list: the pattern each channel plays,
// -1 when the channel has no pattern in the frame.
type Frame [ChannelCount]int

// EmptyFrame returns a frame where no channel plays.
func EmptyFrame() Frame {
	var f Frame
	for i := range f {
		f[i] = -1
	}
	return f
}

// Pattern returns the pattern id of the channel; or -1 if the channel is out
// of range.
func (f Frame) Pattern(c Channel) int {
	if c < 0 || int(c) >= ChannelCount {
		return -1
	}
	return f[c]
}

// Order is the frame list of a song. ORDER lines may arrive out of sequence,
// so Set grows the slice by the necessary amount, filling skipped slots with
// empty frames.
type Order []Frame

// Set sets the frame at index; appending empty frames until the slice is long
// enough.
func (s *Order) Set(index int, value Frame) {
	for len(*s) <= index {
		*s = append(*s, EmptyFrame())
	}
	(*s)[index] = value
}
