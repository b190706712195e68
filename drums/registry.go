// Package drums turns noise channel notes into Pently drums and resolves the
// sound effects that drums play.
package drums

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ft2pently/ft2pently"
)

type (
	// Pair is a dual drum: a noise instrument and the triangle instrument
	// played with it, NoInstrument when there is none.
	Pair struct {
		Noise    int
		Triangle int
	}

	// Registry collects how the noise channel is used over all songs and
	// names the drums that will be synthesized for it.
	Registry struct {
		tables *ft2pently.Tables
		opts   ft2pently.Options

		// single noise mode: frequencies used per instrument, first seen
		// first
		instruments []int
		frequencies map[int][]int

		// dual drum mode
		pairs []Pair
		ids   map[Pair]int
	}
)

// NewRegistry returns an empty registry.
func NewRegistry(tables *ft2pently.Tables, opts ft2pently.Options) *Registry {
	return &Registry{
		tables:      tables,
		opts:        opts,
		frequencies: map[int][]int{},
		ids:         map[Pair]int{},
	}
}

// Observe records the noise notes of a finished song. Patterns are scanned
// in id order and only within their effective length.
func (r *Registry) Observe(song *ft2pently.Song) {
	if !r.opts.AutoDrums() {
		return
	}
	pats := song.Patterns[ft2pently.Noise]
	for _, id := range slices.Sorted(maps.Keys(pats)) {
		p := pats[id]
		for row := 0; row < p.Length && row < len(p.Rows); row++ {
			n := &p.Rows[row]
			if !n.Sounding() || n.Instrument == ft2pently.NoInstrument {
				continue
			}
			if r.opts.AutoDrum {
				r.addPair(pairOf(n))
			} else if f, ok := n.NoiseFrequency(); ok {
				r.addFrequency(n.Instrument, f)
			}
		}
	}
}

func pairOf(n *ft2pently.Note) Pair {
	p := Pair{Noise: n.Instrument, Triangle: ft2pently.NoInstrument}
	if e, ok := n.Effect(ft2pently.FxAttack); ok {
		p.Triangle = int(e.Param)
	}
	return p
}

func (r *Registry) addPair(p Pair) int {
	if id, ok := r.ids[p]; ok {
		return id
	}
	id := len(r.pairs)
	r.pairs = append(r.pairs, p)
	r.ids[p] = id
	return id
}

func (r *Registry) addFrequency(inst, freq int) {
	freqs, ok := r.frequencies[inst]
	if !ok {
		r.instruments = append(r.instruments, inst)
	}
	if !slices.Contains(freqs, freq) {
		r.frequencies[inst] = append(freqs, freq)
	}
}

// Pairs returns the dual drum pairs in id order.
func (r *Registry) Pairs() []Pair {
	return slices.Clone(r.pairs)
}

// PairID returns the drum id of a pair.
func (r *Registry) PairID(p Pair) (int, bool) {
	id, ok := r.ids[p]
	return id, ok
}

// DrumName returns the drum a note plays on the drum track: the declared
// drum of a DPCM note, or the synthesized drum of a noise note.
func (r *Registry) DrumName(ch ft2pently.Channel, n *ft2pently.Note) (string, bool) {
	switch ch {
	case ft2pently.DPCM:
		return r.tables.DrumName(n)
	case ft2pently.Noise:
		inst := r.tables.Instrument(n.Instrument)
		if inst == nil {
			return "", false
		}
		if r.opts.AutoDrum {
			id, ok := r.ids[pairOf(n)]
			return pairDrumName(id), ok
		}
		if f, ok := n.NoiseFrequency(); ok && r.opts.AutoNoise {
			return noiseDrumName(inst, f), true
		}
	}
	return "", false
}

// Drum names end in a letter so that the note length written after them in a
// pattern reads unambiguously.

func pairDrumName(id int) string {
	return "nt" + letters(id)
}

func noiseDrumName(inst *ft2pently.Instrument, freq int) string {
	return fmt.Sprintf("n%s_%s", inst.Label, letters(freq))
}

// letters spells n as a, b, ... z, aa, ab, ...
func letters(n int) string {
	var ret []byte
	for ; n >= 0; n = n/26 - 1 {
		ret = append([]byte{byte('a' + n%26)}, ret...)
	}
	return string(ret)
}

func noiseSfxName(inst *ft2pently.Instrument, freq int) string {
	return fmt.Sprintf("nsfx_%s_%X", inst.Label, freq)
}
