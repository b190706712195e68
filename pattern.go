package ft2pently

// Pattern is the grid of notes of one pattern on one channel. Rows is grown
// only by the necessary amount when a note is set; rows beyond its end read as
// blank cells.
type Pattern struct {
	Rows []Note `yaml:"rows,omitempty"`
	// Length is the effective length in rows; loop, fine and pattern cut
	// effects shorten it.
	Length int  `yaml:"length"`
	Used   bool `yaml:"used,omitempty"`
}

// NewPattern returns an empty pattern of the given effective length.
func NewPattern(length int) *Pattern {
	return &Pattern{Length: length}
}

// Get returns the note at row; or a blank note if the row is out of range.
func (p *Pattern) Get(row int) Note {
	if row < 0 || row >= len(p.Rows) {
		return Blank()
	}
	return p.Rows[row]
}

// At returns a pointer to the note at row, growing the grid as needed.
func (p *Pattern) At(row int) *Note {
	for len(p.Rows) <= row {
		p.Rows = append(p.Rows, Blank())
	}
	return &p.Rows[row]
}

// Set sets the note at row; appending blank notes until the grid is long
// enough.
func (p *Pattern) Set(row int, note Note) {
	*p.At(row) = note
}

// Occupied reports whether a sounding note has already been written at row.
func (p *Pattern) Occupied(row int) bool {
	if row < 0 || row >= len(p.Rows) {
		return false
	}
	return p.Rows[row].Sounding()
}

// Truncate shortens the effective length to end just after row.
func (p *Pattern) Truncate(row int) {
	if row+1 < p.Length {
		p.Length = row + 1
	}
}

// PrevSounding returns the row of the nearest sounding note strictly before
// row, or -1.
func (p *Pattern) PrevSounding(row int) int {
	for r := min(row, len(p.Rows)) - 1; r >= 0; r-- {
		if p.Rows[r].Sounding() {
			return r
		}
	}
	return -1
}

// InheritedInstrument returns the instrument of the nearest note before row
// that has one set, or NoInstrument.
func (p *Pattern) InheritedInstrument(row int) int {
	for r := min(row, len(p.Rows)) - 1; r >= 0; r-- {
		if p.Rows[r].Instrument != NoInstrument {
			return p.Rows[r].Instrument
		}
	}
	return NoInstrument
}

// PrevVolume returns the volume level of the nearest note before row that
// sets one, or VolumeUnchanged.
func (p *Pattern) PrevVolume(row int) VolumeLevel {
	for r := min(row, len(p.Rows)) - 1; r >= 0; r-- {
		if p.Rows[r].Volume != VolumeUnchanged {
			return p.Rows[r].Volume
		}
	}
	return VolumeUnchanged
}

// UpdateUsed sets Used if a sounding note exists within the effective length.
func (p *Pattern) UpdateUsed() bool {
	p.Used = false
	for r := 0; r < p.Length && r < len(p.Rows); r++ {
		if p.Rows[r].Sounding() {
			p.Used = true
			break
		}
	}
	return p.Used
}
