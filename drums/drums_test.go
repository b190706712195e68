package drums_test

import (
	"reflect"
	"testing"

	"github.com/ft2pently/ft2pently"
	"github.com/ft2pently/ft2pently/drums"
)

func macro(mt ft2pently.MacroType, id int, values ...int8) *ft2pently.Macro {
	return &ft2pently.Macro{Type: mt, ID: id, Loop: ft2pently.NoLoopPoint, Release: -1, Values: values}
}

func instrument(tables *ft2pently.Tables, id int, name string, macros map[ft2pently.MacroType]*ft2pently.Macro) {
	inst := ft2pently.NewInstrument(id, name)
	for mt, m := range macros {
		tables.Macros[mt][m.ID] = m
		inst.Macros[mt] = m.ID
	}
	tables.DefineInstrument(inst)
}

func noiseSong(notes ...ft2pently.Note) *ft2pently.Song {
	song := ft2pently.NewSong(1, "Drums")
	song.Rows = len(notes)
	p := song.EnsurePattern(ft2pently.Noise, 0)
	for row, n := range notes {
		p.Set(row, n)
	}
	song.Finalize()
	return song
}

func hit(freq byte, inst int, effects ...ft2pently.Effect) ft2pently.Note {
	n := ft2pently.Blank()
	n.Kind = ft2pently.PitchNote
	n.Letter = freq
	n.Instrument = inst
	n.Effects = effects
	return n
}

func snapshot(tables *ft2pently.Tables) [ft2pently.MacroTypeCount]map[int]ft2pently.Macro {
	var ret [ft2pently.MacroTypeCount]map[int]ft2pently.Macro
	for mt := range tables.Macros {
		ret[mt] = map[int]ft2pently.Macro{}
		for id, m := range tables.Macros[mt] {
			ret[mt][id] = *m.Copy()
		}
	}
	return ret
}

func TestDualDrums(t *testing.T) {
	tables := ft2pently.NewTables()
	instrument(tables, 3, "Snare", map[ft2pently.MacroType]*ft2pently.Macro{
		ft2pently.MacroVolume: macro(ft2pently.MacroVolume, 0, 8, 4, 0),
	})
	instrument(tables, 4, "Thump", map[ft2pently.MacroType]*ft2pently.Macro{
		ft2pently.MacroVolume: macro(ft2pently.MacroVolume, 1, 15, 0),
		ft2pently.MacroDuty:   macro(ft2pently.MacroDuty, 0, 1),
	})
	opts := ft2pently.DefaultOptions()
	opts.AutoDrum = true
	reg := drums.NewRegistry(tables, opts)
	pair := ft2pently.Effect{Kind: ft2pently.FxAttack, Param: 4}
	song := noiseSong(hit('5', 3, pair), hit('5', 3, pair), hit('7', 3))
	reg.Observe(song)
	before := snapshot(tables)
	expectedPairs := []drums.Pair{{Noise: 3, Triangle: 4}, {Noise: 3, Triangle: ft2pently.NoInstrument}}
	if got := reg.Pairs(); !reflect.DeepEqual(got, expectedPairs) {
		t.Fatalf("got pairs %v expected %v", got, expectedPairs)
	}
	for row, expected := range []string{"nta", "nta", "ntb"} {
		n := song.Patterns[ft2pently.Noise][0].Get(row)
		if got, ok := reg.DrumName(ft2pently.Noise, &n); !ok || got != expected {
			t.Fatalf("row %d: got drum %q expected %q", row, got, expected)
		}
	}
	kit, err := reg.Synthesize(&ft2pently.Diag{})
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	expected := &drums.Kit{
		SoundEffects: []ft2pently.SoundEffect{
			{Name: "nsfx_Snare", Instrument: 3, Channel: ft2pently.Noise, Volume: macro(ft2pently.MacroVolume, 0, 8, 4, 0)},
			{Name: "tsfx_Thump", Instrument: 4, Channel: ft2pently.Triangle, Volume: macro(ft2pently.MacroVolume, 1, 15, 0)},
		},
		Drums: []ft2pently.Drum{
			{Name: "nta", Effects: []string{"nsfx_Snare", "tsfx_Thump"}},
			{Name: "ntb", Effects: []string{"nsfx_Snare"}},
		},
	}
	if !reflect.DeepEqual(kit, expected) {
		t.Fatalf("got %+v expected %+v", kit, expected)
	}
	if after := snapshot(tables); !reflect.DeepEqual(before, after) {
		t.Fatalf("macros changed by synthesis: got %v expected %v", after, before)
	}
}

func TestNoiseDrums(t *testing.T) {
	tables := ft2pently.NewTables()
	instrument(tables, 5, "Hat", map[ft2pently.MacroType]*ft2pently.Macro{
		ft2pently.MacroArpeggio: macro(ft2pently.MacroArpeggio, 0, 0, 3, -2),
		ft2pently.MacroDuty:     macro(ft2pently.MacroDuty, 1, 0, 1, 2, 3),
	})
	instrument(tables, 6, "Tom", nil)
	opts := ft2pently.DefaultOptions()
	opts.AutoNoise = true
	reg := drums.NewRegistry(tables, opts)
	song := noiseSong(hit('E', 5), hit('1', 5), hit('E', 5), hit('3', 6))
	reg.Observe(song)
	before := snapshot(tables)
	n := song.Patterns[ft2pently.Noise][0].Get(0)
	if got, _ := reg.DrumName(ft2pently.Noise, &n); got != "nHat_o" {
		t.Fatalf("got drum %q expected nHat_o", got)
	}
	kit, err := reg.Synthesize(&ft2pently.Diag{})
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	expected := []ft2pently.SoundEffect{
		{Name: "nsfx_Hat_E", Instrument: 5, Channel: ft2pently.Noise, Pitch: macro(ft2pently.MacroArpeggio, 0, 14, 1, 12), Timbre: macro(ft2pently.MacroDuty, 1, 0, 1, 0, 1)},
		{Name: "nsfx_Hat_1", Instrument: 5, Channel: ft2pently.Noise, Pitch: macro(ft2pently.MacroArpeggio, 0, 1, 4, 15), Timbre: macro(ft2pently.MacroDuty, 1, 0, 1, 0, 1)},
		{Name: "nsfx_Tom_3", Instrument: 6, Channel: ft2pently.Noise, Pitch: macro(ft2pently.MacroArpeggio, -1, 3)},
	}
	if !reflect.DeepEqual(kit.SoundEffects, expected) {
		t.Fatalf("got %+v expected %+v", kit.SoundEffects, expected)
	}
	expectedDrums := []ft2pently.Drum{
		{Name: "nHat_o", Effects: []string{"nsfx_Hat_E"}},
		{Name: "nHat_b", Effects: []string{"nsfx_Hat_1"}},
		{Name: "nTom_d", Effects: []string{"nsfx_Tom_3"}},
	}
	if !reflect.DeepEqual(kit.Drums, expectedDrums) {
		t.Fatalf("got %+v expected %+v", kit.Drums, expectedDrums)
	}
	if after := snapshot(tables); !reflect.DeepEqual(before, after) {
		t.Fatalf("macros changed by synthesis: got %v expected %v", after, before)
	}
}

func TestDeclaredSoundEffects(t *testing.T) {
	tables := ft2pently.NewTables()
	instrument(tables, 1, "Bell", map[ft2pently.MacroType]*ft2pently.Macro{
		ft2pently.MacroVolume: macro(ft2pently.MacroVolume, 2, 10, 5),
		ft2pently.MacroDuty:   macro(ft2pently.MacroDuty, 2, 2),
	})
	tables.SoundEffects = []ft2pently.SoundEffect{
		{Name: "bell", Instrument: 1, Channel: ft2pently.Pulse2},
		{Name: "gone", Instrument: 9, Channel: ft2pently.Noise},
	}
	tables.Drums = []ft2pently.Drum{{Name: "ding", Effects: []string{"bell"}}}
	reg := drums.NewRegistry(tables, ft2pently.DefaultOptions())
	diag := &ft2pently.Diag{}
	kit, err := reg.Synthesize(diag)
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	expected := &drums.Kit{
		SoundEffects: []ft2pently.SoundEffect{
			{Name: "bell", Instrument: 1, Channel: ft2pently.Pulse2, Volume: macro(ft2pently.MacroVolume, 2, 10, 5), Timbre: macro(ft2pently.MacroDuty, 2, 2)},
		},
		Drums: []ft2pently.Drum{{Name: "ding", Effects: []string{"bell"}}},
	}
	if !reflect.DeepEqual(kit, expected) {
		t.Fatalf("got %+v expected %+v", kit, expected)
	}
	if diag.Warnings != 1 {
		t.Fatalf("got %d warnings expected 1 for the undefined instrument", diag.Warnings)
	}
	if tables.SoundEffects[0].Resolved() {
		t.Fatalf("declared sound effect was changed in the tables")
	}
	if _, err := reg.Synthesize(&ft2pently.Diag{Strict: true}); err == nil {
		t.Fatalf("expected an error in strict mode")
	}
}
