package convert_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ft2pently/ft2pently"
	"github.com/ft2pently/ft2pently/convert"
)

const empty = "... .. . ..."

func row(n int, cells ...string) string {
	for len(cells) < 5 {
		cells = append(cells, empty)
	}
	return fmt.Sprintf("ROW %02X : %s", n, strings.Join(cells, " : "))
}

func export(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestConvert(t *testing.T) {
	input := export(
		"# FamiTracker text export 0.4.2",
		`COMMENT "include header.inc"`,
		`COMMENT "sfx hit 02 noise"`,
		`COMMENT "drum c3 kick hit"`,
		"MACRO 0 0 -1 -1 0 : 3 2 1 0",
		"MACRO 0 1 -1 -1 0 : 8 8",
		`INST2A03 0 0 -1 -1 -1 -1 "Lead"`,
		`INST2A03 2 1 -1 -1 -1 -1 "Hit"`,
		`TRACK 4 6 150 "Intro"`,
		"COLUMNS : 1 1 1 1 1",
		"ORDER 00 : 00 00 00 00 00",
		"PATTERN 00",
		row(0, "C-4 00 . ...", empty, empty, empty, "C-3 02 . ..."),
		row(1),
		row(2),
		row(3, "D-4 .. . ..."),
	)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "header.inc"), []byte("; made by hand\n"), 0644); err != nil {
		t.Fatalf("could not write include: %v", err)
	}
	var out bytes.Buffer
	c, err := convert.New(&out, ft2pently.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("could not create converter: %v", err)
	}
	c.Dir = dir
	if err := c.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	expected := "durations stick\r\nnotenames english\r\n" +
		"; made by hand\r\n" +
		"\r\nsong Intro\r\n  time 4/4\r\n  scale 16\r\n  tempo 150.00\r\n" +
		"\r\n  pattern pat_1_0_0 with Lead on pulse1\r\n    absolute\r\n    c''8 w16 d''16 \r\n" +
		"\r\n  pattern pat_1_4_0\r\n    kick4 \r\n" +
		"\r\n  at 1\r\n  play pat_1_0_0\r\n  play pat_1_4_0 on drum\r\n  at 1:2:1\r\n  dal segno\r\n" +
		"\r\ninstrument Lead\r\n  decay 15\r\n  volume 3 \r\n" +
		"\r\nsfx hit on noise\r\n  volume 8 8 \r\n" +
		"\r\ndrum kick hit\r\n"
	if got := out.String(); got != expected {
		t.Fatalf("got %q expected %q", got, expected)
	}
}

func TestSongsAreWrittenInOrder(t *testing.T) {
	song := func(name string) []string {
		return []string{
			fmt.Sprintf(`TRACK 2 6 150 "%s"`, name),
			"COLUMNS : 1 1 1 1 1",
			"ORDER 00 : 00 00 00 00 00",
			"PATTERN 00",
			row(0, "C-4 00 . ..."),
			row(1),
		}
	}
	lines := []string{`INST2A03 0 -1 -1 -1 -1 -1 "Lead"`}
	lines = append(lines, song("Intro")...)
	lines = append(lines, song("Intro")...)
	var out bytes.Buffer
	var warnings []ft2pently.Diagnostic
	reporter := ft2pently.ReporterFunc(func(d ft2pently.Diagnostic) { warnings = append(warnings, d) })
	c, err := convert.New(&out, ft2pently.DefaultOptions(), reporter)
	if err != nil {
		t.Fatalf("could not create converter: %v", err)
	}
	c.KeepSongs = true
	if err := c.Run(strings.NewReader(export(lines...))); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	got := out.String()
	first, second := strings.Index(got, "song Intro\r\n"), strings.Index(got, "song Intro_2\r\n")
	if first < 0 || second < first {
		t.Fatalf("songs missing or out of order in %q", got)
	}
	if !strings.Contains(got, "play pat_2_0_0") {
		t.Fatalf("second song does not play its own pattern in %q", got)
	}
	if len(c.Songs) != 2 || len(warnings) != 1 {
		t.Fatalf("got %d songs and %d warnings expected 2 and 1", len(c.Songs), len(warnings))
	}
}

func TestAutoDrum(t *testing.T) {
	input := export(
		`INST2A03 3 -1 -1 -1 -1 -1 "Snare"`,
		`INST2A03 4 -1 -1 -1 -1 -1 "Thump"`,
		`TRACK 2 6 150 "Beat"`,
		"COLUMNS : 1 1 1 1 1",
		"ORDER 00 : 00 00 00 00 00",
		"PATTERN 00",
		row(0, empty, empty, empty, "5-# 03 . H04"),
		row(1, empty, empty, empty, "7-# 03 . ..."),
	)
	opts := ft2pently.DefaultOptions()
	opts.AutoDrum = true
	var out bytes.Buffer
	if _, err := convert.Convert(strings.NewReader(input), &out, opts, nil); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	got := out.String()
	for _, expected := range []string{
		"\r\n  pattern pat_1_3_0\r\n    nta16 ntb16 \r\n",
		"\r\n  play pat_1_3_0 on drum\r\n",
		"\r\nsfx nsfx_Snare on noise",
		"\r\nsfx tsfx_Thump on triangle",
		"\r\ndrum nta nsfx_Snare tsfx_Thump\r\n",
		"\r\ndrum ntb nsfx_Snare\r\n",
	} {
		if !strings.Contains(got, expected) {
			t.Fatalf("%q missing from %q", expected, got)
		}
	}
}

func TestMissingInclude(t *testing.T) {
	c, err := convert.New(io.Discard, ft2pently.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("could not create converter: %v", err)
	}
	c.Dir = t.TempDir()
	err = c.Line(`COMMENT "include nothing.txt"`)
	var fatal *ft2pently.Error
	if !errors.As(err, &fatal) {
		t.Fatalf("got %v expected a conversion error", err)
	}
}

func TestConflictingModes(t *testing.T) {
	opts := ft2pently.DefaultOptions()
	opts.AutoDrum, opts.AutoNoise = true, true
	if _, err := convert.New(io.Discard, opts, nil); err == nil {
		t.Fatalf("expected an error when both drum modes are on")
	}
}
