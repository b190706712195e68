// Package convert ties the reader, the drum synthesizer and the score
// compiler together into a single pass over an export.
package convert

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ft2pently/ft2pently"
	"github.com/ft2pently/ft2pently/compiler"
	"github.com/ft2pently/ft2pently/drums"
	"github.com/ft2pently/ft2pently/txtexport"
	"github.com/pkg/errors"
)

// Converter turns export lines into a Pently score written to an io.Writer.
// Every song is written as soon as the next one starts; the instruments,
// sound effects and drums follow the last song on Close.
type Converter struct {
	Tables *ft2pently.Tables
	Diag   *ft2pently.Diag
	// Dir is where included files are looked up.
	Dir string
	// Open opens included files; os.Open relative to Dir by default.
	Open func(name string) (io.ReadCloser, error)
	// KeepSongs makes the converter keep every song in Songs.
	KeepSongs bool
	Songs     []*ft2pently.Song
	// Kit is the resolved sound effects and drums, set by Close.
	Kit *drums.Kit

	w        io.Writer
	parser   *txtexport.Parser
	compiler *compiler.Compiler
	drums    *drums.Registry
}

type handler struct {
	c *Converter
}

// New returns a converter writing to w. The score header is written right
// away.
func New(w io.Writer, opts ft2pently.Options, reporter ft2pently.Reporter) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Converter{
		Tables: ft2pently.NewTables(),
		Diag:   &ft2pently.Diag{Reporter: reporter, Strict: opts.Strict, HexRows: opts.HexRows},
		w:      w,
	}
	var err error
	if c.compiler, err = compiler.New(c.Tables, c.Diag, opts); err != nil {
		return nil, err
	}
	c.drums = drums.NewRegistry(c.Tables, opts)
	c.compiler.Drums = c.drums
	if c.parser, err = txtexport.New(c.Tables, c.Diag, opts, handler{c}); err != nil {
		return nil, err
	}
	header, err := c.compiler.Header()
	if err != nil {
		return nil, err
	}
	return c, c.write(header)
}

// Line converts one line of the export.
func (c *Converter) Line(text string) error {
	return c.parser.Line(text)
}

// Close writes the last song and the instrument tables.
func (c *Converter) Close() error {
	if err := c.parser.Close(); err != nil {
		return err
	}
	kit, err := c.drums.Synthesize(c.Diag)
	if err != nil {
		return err
	}
	c.Kit = kit
	text, err := c.compiler.Instruments(kit.SoundEffects, kit.Drums)
	if err != nil {
		return err
	}
	return c.write(text)
}

func (c *Converter) write(text string) error {
	if _, err := io.WriteString(c.w, text); err != nil {
		return errors.Wrap(err, "could not write score")
	}
	return nil
}

func (c *Converter) open(name string) (io.ReadCloser, error) {
	if c.Open != nil {
		return c.Open(name)
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(c.Dir, name)
	}
	return os.Open(name)
}

func (h handler) Song(song *ft2pently.Song) error {
	c := h.c
	c.drums.Observe(song)
	text, err := c.compiler.Song(song)
	if err != nil {
		return err
	}
	if c.KeepSongs {
		c.Songs = append(c.Songs, song)
	}
	return c.write(text)
}

// Include copies an included file into the score, line by line.
func (h handler) Include(name string) error {
	c := h.c
	r, err := c.open(name)
	if err != nil {
		return c.Diag.Errorf(ft2pently.Nowhere, "could not include %s: %v", name, err)
	}
	defer r.Close()
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.WriteString(strings.TrimRight(scanner.Text(), "\r"))
		b.WriteString("\r\n")
	}
	if err := scanner.Err(); err != nil {
		return c.Diag.Errorf(ft2pently.Nowhere, "could not read %s: %v", name, err)
	}
	return c.write(b.String())
}

// Convert reads a whole export from r and writes the score to w.
func Convert(r io.Reader, w io.Writer, opts ft2pently.Options, reporter ft2pently.Reporter) (*Converter, error) {
	c, err := New(w, opts, reporter)
	if err != nil {
		return nil, err
	}
	return c, c.Run(r)
}

// Run feeds every line of r to the converter and closes it.
func (c *Converter) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := c.Line(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "could not read export")
	}
	return c.Close()
}
