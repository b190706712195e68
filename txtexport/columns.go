package txtexport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Cell is the raw text of one channel of a ROW line, split into its fields
// but not yet interpreted.
type Cell struct {
	Note       string   // letter, sharp marker and octave, e.g. "C#4", "1-#", "---"
	Instrument string   // two hex digits or ".."
	Volume     byte     // hex digit or '.'
	Effects    []string // letter and two hex digits each, or "..."
}

// field is a fixed width slice of a channel region, counted from the ':'
// that starts the region.
type field struct {
	offset, width int
}

var (
	noteField       = field{2, 3}
	instrumentField = field{6, 2}
	volumeField     = field{9, 1}
)

const (
	effectOffset = 11
	effectStride = 4
	effectWidth  = 3
)

// regionWidth is the length of a channel region with the given number of
// effect columns, from its ':' to the end of the last effect.
func regionWidth(effects int) int {
	return effectOffset + effectStride*(effects-1) + effectWidth
}

func (f field) of(region string) string {
	return region[f.offset : f.offset+f.width]
}

// MalformedRowError tells which channel of a row could not be split.
type MalformedRowError struct {
	Channel int
	Reason  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at channel %d: %s", e.Channel, e.Reason)
}

// SplitRow splits a ROW line into the row number and a cell per channel.
// effectColumns gives the effect column count of each channel to read. If a
// channel region is missing or too short, the cells before it are returned
// along with a *MalformedRowError.
func SplitRow(line string, effectColumns []int) (int, []Cell, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return 0, nil, &MalformedRowError{Channel: 0, Reason: "no channel delimiter"}
	}
	head := strings.Fields(line[:colon])
	if len(head) != 2 || head[0] != "ROW" {
		return 0, nil, errors.Errorf("not a row: %q", line)
	}
	row, err := strconv.ParseUint(head[1], 16, 16)
	if err != nil {
		return 0, nil, errors.Errorf("invalid row number %q", head[1])
	}
	cells := make([]Cell, 0, len(effectColumns))
	pos := colon
	for ch, effects := range effectColumns {
		if pos < 0 || pos >= len(line) || line[pos] != ':' {
			return int(row), cells, &MalformedRowError{Channel: ch, Reason: "missing channel delimiter"}
		}
		width := regionWidth(effects)
		if len(line)-pos < width {
			return int(row), cells, &MalformedRowError{Channel: ch, Reason: fmt.Sprintf("expected %d columns, got %d", width, len(line)-pos)}
		}
		region := line[pos : pos+width]
		cell := Cell{
			Note:       noteField.of(region),
			Instrument: instrumentField.of(region),
			Volume:     volumeField.of(region)[0],
			Effects:    make([]string, effects),
		}
		for j := range cell.Effects {
			cell.Effects[j] = field{effectOffset + effectStride*j, effectWidth}.of(region)
		}
		cells = append(cells, cell)
		pos += width
		if next := strings.IndexByte(line[pos:], ':'); next >= 0 {
			pos += next
		} else {
			pos = -1
		}
	}
	return int(row), cells, nil
}
