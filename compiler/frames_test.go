package compiler

import (
	"reflect"
	"testing"

	"github.com/ft2pently/ft2pently"
)

func TestDuration(t *testing.T) {
	for _, c := range []struct {
		rows     int
		dotted   bool
		slur     bool
		expected []string
	}{
		{1, false, false, []string{"16"}},
		{3, false, false, []string{"8", "w16"}},
		{3, true, false, []string{"8."}},
		{15, false, true, []string{"2", "w4", "w8", "w16~"}},
		{15, true, false, []string{"2.", "w8."}},
		{16, false, false, []string{"1"}},
		{17, false, false, []string{"16", "w1"}},
		{33, false, true, []string{"16", "w1", "w1~"}},
	} {
		if got := duration(c.rows, c.dotted, c.slur); !reflect.DeepEqual(got, c.expected) {
			t.Fatalf("duration(%d, %v, %v): got %v expected %v", c.rows, c.dotted, c.slur, got, c.expected)
		}
	}
}

func TestSongTime(t *testing.T) {
	for row, expected := range map[int]string{0: "1", 4: "1:2:1", 7: "1:2:4", 16: "2", 35: "3:1:4"} {
		if got := songTime(row); got != expected {
			t.Fatalf("songTime(%d): got %v expected %v", row, got, expected)
		}
	}
}

func TestSequence(t *testing.T) {
	song := ft2pently.NewSong(1, "Intro")
	song.Rows = 8
	lead := song.EnsurePattern(ft2pently.Pulse1, 0)
	lead.At(0).Kind = ft2pently.PitchNote
	lead.At(2).Effects = []ft2pently.Effect{{Kind: ft2pently.FxSpeed, Param: 3}}
	short := song.EnsurePattern(ft2pently.Pulse2, 1)
	short.At(0).Kind = ft2pently.PitchNote
	short.At(0).Effects = []ft2pently.Effect{{Kind: ft2pently.FxAttack, Param: 2}}
	short.Truncate(3)
	frame := func(p1, p2 int) ft2pently.Frame {
		f := ft2pently.EmptyFrame()
		f[ft2pently.Pulse1], f[ft2pently.Pulse2] = p1, p2
		return f
	}
	song.Order = ft2pently.Order{frame(0, 1), frame(0, -1), frame(-1, -1)}
	song.LoopTo = 1
	song.Finalize()
	got := sequence(song, []ft2pently.Channel{ft2pently.Pulse1, ft2pently.Pulse2})
	expected := []Event{
		{"1", []string{"play pat_1_0_0", "play pat_1_1_1", "attack on triangle"}},
		{"1:1:3", []string{"tempo 300.00"}},
		{"1:2:1", []string{"segno", "play pat_1_0_0", "stop pulse2"}},
		{"1:4:1", []string{"stop pulse1"}},
		{"2:2:1", []string{"dal segno"}},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %v expected %v", got, expected)
	}
}

func TestSequenceFine(t *testing.T) {
	song := ft2pently.NewSong(2, "Outro")
	song.Rows = 4
	p := song.EnsurePattern(ft2pently.Triangle, 0)
	p.At(1).Kind = ft2pently.PitchNote
	f := ft2pently.EmptyFrame()
	f[ft2pently.Triangle] = 0
	song.Order = ft2pently.Order{f, f}
	song.LoopTo = ft2pently.NoLoop
	song.Finalize()
	got := sequence(song, []ft2pently.Channel{ft2pently.Triangle})
	expected := []Event{
		{"1", []string{"play pat_2_2_0"}},
		{"1:3:1", []string{"fine"}},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %v expected %v", got, expected)
	}
}

func TestVibratoToken(t *testing.T) {
	for param, expected := range map[byte]string{
		0x00: "MPOF",
		0x50: "MPOF",
		0x01: "MP1",
		0x03: "MP1",
		0x04: "MP2",
		0x67: "MP2",
		0x08: "MP3",
		0x0B: "MP3",
		0x0C: "MP4",
		0x0F: "MP4",
	} {
		if got := vibratoToken(param); got != expected {
			t.Fatalf("4%02X: got %v expected %v", param, got, expected)
		}
	}
}
