// Package compiler writes songs and instrument tables as a Pently score.
package compiler

import (
	"bytes"
	"embed"
	"io/fs"
	"maps"
	"slices"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/ft2pently/ft2pently"
	"github.com/pkg/errors"
)

//go:embed templates/*.pently
var templates embed.FS

// DrumNamer names the drum a noise or DPCM note plays on the drum track.
type DrumNamer interface {
	DrumName(ch ft2pently.Channel, n *ft2pently.Note) (string, bool)
}

type Compiler struct {
	Template *template.Template
	Tables   *ft2pently.Tables
	Diag     *ft2pently.Diag
	Options  ft2pently.Options
	// Drums names drum notes; when nil, only DPCM notes bound by drum
	// directives have names.
	Drums DrumNamer
}

type (
	songData struct {
		Label    string
		Tempo    float64
		Patterns []*PatternBlock
		Events   []Event
	}

	instrumentsData struct {
		Instruments  []*InstrumentBlock
		SoundEffects []*InstrumentBlock
		Drums        []ft2pently.Drum
	}

	declaredDrums struct {
		tables *ft2pently.Tables
	}
)

var funcs = template.FuncMap{
	"eol": func() string { return "\r\n" },
}

// New returns a new compiler using the default .pently templates
func New(tables *ft2pently.Tables, diag *ft2pently.Diag, opts ft2pently.Options) (*Compiler, error) {
	return NewFromTemplates(templates, "templates/*.pently", tables, diag, opts)
}

func NewFromTemplates(fsys fs.FS, pattern string, tables *ft2pently.Tables, diag *ft2pently.Diag, opts ft2pently.Options) (*Compiler, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).Funcs(funcs).ParseFS(fsys, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse templates %q", pattern)
	}
	return &Compiler{Template: tmpl, Tables: tables, Diag: diag, Options: opts}, nil
}

// Header returns the lines that start every score.
func (com *Compiler) Header() (string, error) {
	return com.compile("header.pently", nil)
}

// Song returns the patterns and the conductor track of a finished song.
func (com *Compiler) Song(song *ft2pently.Song) (string, error) {
	channels, err := com.channels(song)
	if err != nil {
		return "", err
	}
	data := songData{
		Label: song.Label,
		Tempo: ft2pently.Tempo(song.Speed, song.Tempo),
	}
	for _, c := range channels {
		pats := song.Patterns[c]
		for _, id := range slices.Sorted(maps.Keys(pats)) {
			if !pats[id].Used {
				continue
			}
			block, err := com.pattern(song, c, id, pats[id])
			if err != nil {
				return "", err
			}
			data.Patterns = append(data.Patterns, block)
		}
	}
	data.Events = sequence(song, channels)
	return com.compile("song.pently", data)
}

// Instruments returns the used instruments followed by the sound effects
// and drums.
func (com *Compiler) Instruments(sfx []ft2pently.SoundEffect, drums []ft2pently.Drum) (string, error) {
	var data instrumentsData
	for _, inst := range com.Tables.UsedInstruments() {
		block, err := com.instrument(inst)
		if err != nil {
			return "", err
		}
		data.Instruments = append(data.Instruments, block)
	}
	for i := range sfx {
		data.SoundEffects = append(data.SoundEffects, soundEffect(&sfx[i]))
	}
	for _, d := range drums {
		if len(d.Effects) > 0 {
			data.Drums = append(data.Drums, d)
		}
	}
	return com.compile("instruments.pently", data)
}

// channels returns the channels of a song that get patterns: the pitched
// ones, and either the noise channel (auto drums) or the DPCM channel.
func (com *Compiler) channels(song *ft2pently.Song) ([]ft2pently.Channel, error) {
	drum := ft2pently.DPCM
	if com.Options.AutoDrums() {
		drum = ft2pently.Noise
		for _, p := range song.Patterns[ft2pently.DPCM] {
			if p.Used {
				where := ft2pently.Position{Song: song.Number, SongName: song.Name, Pattern: -1, Channel: ft2pently.DPCM, Row: -1}
				if err := com.Diag.Warnf(where, "DPCM is not played when drums are made from the noise channel"); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	var ret []ft2pently.Channel
	for c := 0; c < min(song.Channels, ft2pently.ChannelCount); c++ {
		if ch := ft2pently.Channel(c); ch.Pitched() || ch == drum {
			ret = append(ret, ch)
		}
	}
	return ret, nil
}

func (com *Compiler) drums() DrumNamer {
	if com.Drums == nil {
		return declaredDrums{com.Tables}
	}
	return com.Drums
}

func (d declaredDrums) DrumName(ch ft2pently.Channel, n *ft2pently.Note) (string, bool) {
	if ch != ft2pently.DPCM {
		return "", false
	}
	return d.tables.DrumName(n)
}

func (com *Compiler) compile(templateName string, data interface{}) (string, error) {
	result := bytes.NewBufferString("")
	if err := com.Template.ExecuteTemplate(result, templateName, data); err != nil {
		return "", errors.Wrapf(err, "could not execute template %q", templateName)
	}
	return result.String(), nil
}
