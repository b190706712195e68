package compiler

import (
	"strconv"
	"strings"
)

const (
	rowsPerBeat    = 4
	rowsPerMeasure = 16
)

// plainDurations[d-1] spells a run of d rows (1 <= d <= 16) as note lengths:
// the first length goes on the note itself, the rest are waits.
var plainDurations = [rowsPerMeasure][]string{
	{"16"},
	{"8"},
	{"8", "w16"},
	{"4"},
	{"4", "w16"},
	{"4", "w8"},
	{"4", "w8", "w16"},
	{"2"},
	{"2", "w16"},
	{"2", "w8"},
	{"2", "w8", "w16"},
	{"2", "w4"},
	{"2", "w4", "w16"},
	{"2", "w4", "w8"},
	{"2", "w4", "w8", "w16"},
	{"1"},
}

var dottedDurations = [rowsPerMeasure][]string{
	{"16"},
	{"8"},
	{"8."},
	{"4"},
	{"4", "w16"},
	{"4."},
	{"4.", "w16"},
	{"2"},
	{"2", "w16"},
	{"2", "w8"},
	{"2", "w8."},
	{"2."},
	{"2.", "w16"},
	{"2.", "w8"},
	{"2.", "w8."},
	{"1"},
}

// duration spells a run of rows. Runs longer than a measure are the
// remainder followed by one whole-measure wait per extra measure. With slur,
// the last length is tied to the next note.
func duration(rows int, dotted, slur bool) []string {
	if rows < 1 {
		return nil
	}
	table := &plainDurations
	if dotted {
		table = &dottedDurations
	}
	ret := append([]string(nil), table[(rows-1)%rowsPerMeasure]...)
	for i := 0; i < (rows-1)/rowsPerMeasure; i++ {
		ret = append(ret, "w1")
	}
	if slur {
		ret[len(ret)-1] += "~"
	}
	return ret
}

// songTime spells a row offset from the start of the song, e.g. "3" for the
// start of the third measure or "3:2:4" for its eighth row.
func songTime(row int) string {
	measure := row/rowsPerMeasure + 1
	rem := row % rowsPerMeasure
	if rem == 0 {
		return strconv.Itoa(measure)
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(measure))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(rem/rowsPerBeat + 1))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(rem%rowsPerBeat + 1))
	return b.String()
}
