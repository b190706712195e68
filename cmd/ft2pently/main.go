package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/ft2pently/ft2pently"
	"github.com/ft2pently/ft2pently/convert"
	"github.com/ft2pently/ft2pently/preview"
	"github.com/ft2pently/ft2pently/version"
	"github.com/pkg/errors"
)

var encodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"utf-8":        encoding.Nop,
}

// model is what -y and -j write out: everything the converter read.
type model struct {
	Options ft2pently.Options `json:"options" yaml:"options"`
	Tables  *ft2pently.Tables `json:"tables" yaml:"tables"`
	Songs   []*ft2pently.Song `json:"songs" yaml:"songs"`
	Kit     *drumKit          `json:"kit,omitempty" yaml:"kit,omitempty"`
}

type drumKit struct {
	SoundEffects []ft2pently.SoundEffect `json:"soundEffects,omitempty" yaml:"soundEffects,omitempty"`
	Drums        []ft2pently.Drum        `json:"drums,omitempty" yaml:"drums,omitempty"`
}

type readCloser struct {
	io.Reader
	io.Closer
}

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	outPath := flag.String("o", "", "Filename where to write the score. By default, the score is placed next to the export with the extension .pently.")
	configPath := flag.String("c", "", "Read the conversion options from this .yml file. Flags override the file.")
	strict := flag.Bool("strict", false, "Treat every warning as an error.")
	hexRows := flag.Bool("hexrows", false, "Print row numbers in hexadecimal.")
	dotted := flag.Bool("dotted", false, "Use dotted note lengths.")
	autoNoise := flag.Bool("autonoise", false, "Make a drum of every instrument and pitch played on the noise channel.")
	autoDrum := flag.Bool("autodrum", false, "Make a drum of every noise instrument and the triangle instrument paired with it by Hxx.")
	noDecay := flag.Bool("nodecay", false, "Never replace volume envelope tails with decay.")
	forceCut := flag.String("forcecut", "", "Comma separated channels on which Sxx cuts immediately, e.g. triangle,noise")
	enc := flag.String("encoding", "", "Character set of the export. Possible values: windows-1252, iso-8859-1, iso-8859-15, utf-8")
	jsonOut := flag.Bool("j", false, "Also write everything read from the export as a .json file.")
	yamlOut := flag.Bool("y", false, "Also write everything read from the export as a .yml file.")
	midiOut := flag.Bool("m", false, "Also write a .mid preview of every song.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	rep := newReporter(os.Stderr)
	opts := ft2pently.DefaultOptions()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			rep.fatal(errors.Wrapf(err, "could not read config %v", *configPath))
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			rep.fatal(errors.Wrapf(err, "could not parse config %v", *configPath))
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			opts.Strict = *strict
		case "hexrows":
			opts.HexRows = *hexRows
		case "dotted":
			opts.Dotted = *dotted
		case "autonoise":
			opts.AutoNoise = *autoNoise
		case "autodrum":
			opts.AutoDrum = *autoDrum
		case "nodecay":
			opts.Decay = !*noDecay
		case "forcecut":
			opts.ForceCut = strings.Split(*forceCut, ",")
		case "encoding":
			opts.Encoding = *enc
		}
	})
	decoder, ok := encodings[strings.ToLower(opts.Encoding)]
	if !ok {
		rep.fatal(errors.Errorf("unknown encoding %q", opts.Encoding))
		os.Exit(1)
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			_, err := os.Stdout.Write(contents)
			return err
		}
		f := strings.TrimSuffix(filename, filepath.Ext(filename)) + extension
		if *outPath != "" && extension == ".pently" {
			f = *outPath
		}
		original, err := os.ReadFile(f)
		if err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if *safe {
				return errors.Errorf("file %v would be overwritten", f)
			}
		}
		if dir := filepath.Dir(f); dir != "" {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return errors.Wrapf(err, "could not create output directory %v", dir)
			}
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return errors.Wrapf(err, "could not write file %v", f)
		}
		return nil
	}
	open := func(name string) (io.ReadCloser, error) {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		return readCloser{transform.NewReader(f, decoder.NewDecoder()), f}, nil
	}
	process := func(filename string) error {
		input, err := open(filename)
		if err != nil {
			return errors.Wrapf(err, "could not read file %v", filename)
		}
		defer input.Close()
		var score bytes.Buffer
		c, err := convert.New(&score, opts, rep)
		if err != nil {
			return err
		}
		c.Dir = filepath.Dir(filename)
		c.Open = func(name string) (io.ReadCloser, error) {
			if !filepath.IsAbs(name) {
				name = filepath.Join(c.Dir, name)
			}
			return open(name)
		}
		c.KeepSongs = *jsonOut || *yamlOut || *midiOut
		if err := c.Run(input); err != nil {
			return err
		}
		if err := output(filename, ".pently", score.Bytes()); err != nil {
			return errors.Wrap(err, "error outputting score")
		}
		m := model{Options: opts, Tables: c.Tables, Songs: c.Songs}
		if c.Kit != nil {
			m.Kit = &drumKit{SoundEffects: c.Kit.SoundEffects, Drums: c.Kit.Drums}
		}
		if *jsonOut {
			data, err := json.Marshal(m)
			if err != nil {
				return errors.Wrap(err, "could not marshal the conversion as json")
			}
			if err := output(filename, ".json", data); err != nil {
				return errors.Wrap(err, "error outputting json file")
			}
		}
		if *yamlOut {
			data, err := yaml.Marshal(m)
			if err != nil {
				return errors.Wrap(err, "could not marshal the conversion as yaml")
			}
			if err := output(filename, ".yml", data); err != nil {
				return errors.Wrap(err, "error outputting yaml file")
			}
		}
		if *midiOut {
			for _, song := range c.Songs {
				var buf bytes.Buffer
				if err := preview.Write(&buf, song, opts); err != nil {
					return err
				}
				if err := output(filename, "_"+song.Label+".mid", buf.Bytes()); err != nil {
					return errors.Wrap(err, "error outputting midi file")
				}
			}
		}
		if c.Diag.Warnings > 0 {
			fmt.Fprintf(os.Stderr, "%v: %d warnings\n", filename, c.Diag.Warnings)
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if err := process(param); err != nil {
			rep.fatal(err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "ft2pently converts FamiTracker text exports to Pently scores.\nUsage: %s [flags] [export.txt ...]\n", os.Args[0])
	flag.PrintDefaults()
}
