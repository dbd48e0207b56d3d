package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/geoknoesis/rdf-protect/pipeline"
	"github.com/geoknoesis/rdf-protect/rdf"
	"github.com/geoknoesis/rdf-protect/typeindex"
)

// inputFlags are shared by the subcommands that read triples.
type inputFlags struct {
	input        string
	format       string
	baseIRI      string
	maxLineBytes int
	verbose      bool
}

func (f *inputFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&f.input, "input", "i", "-", "input file (N-Triples or JSON-LD), - for stdin")
	flagSet.StringVar(&f.format, "format", "", "input format: ntriples or jsonld (default: from file extension)")
	flagSet.StringVar(&f.baseIRI, "base", "", "base IRI for relative references in JSON-LD input")
	flagSet.IntVar(&f.maxLineBytes, "max-line-bytes", rdf.DefaultMaxLineBytes, "longest accepted N-Triples line, -1 for no limit")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
}

func (f *inputFlags) resolve() (rdf.Format, []rdf.DecodeOption, error) {
	var format rdf.Format
	if f.format != "" {
		parsed, ok := rdf.ParseFormat(f.format)
		if !ok {
			return "", nil, fmt.Errorf("unknown input format %q (supported: ntriples, jsonld)", f.format)
		}
		format = parsed
	}
	options := []rdf.DecodeOption{rdf.WithMaxLineBytes(f.maxLineBytes)}
	if f.baseIRI != "" {
		options = append(options, rdf.WithBaseIRI(f.baseIRI))
	}
	return format, options, nil
}

// parseFlags parses args and reports whether help was requested.
func parseFlags(flagSet *pflag.FlagSet, args []string, stderr io.Writer) (bool, error) {
	flagSet.SetOutput(stderr)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return true, nil
		}
		return false, err
	}
	if flagSet.NArg() > 0 {
		return false, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	return false, nil
}

func runIndex(ctx context.Context, args []string, stderr io.Writer) error {
	var (
		in     inputFlags
		output string
	)
	flagSet := pflag.NewFlagSet("index", pflag.ContinueOnError)
	in.register(flagSet)
	flagSet.StringVarP(&output, "output", "o", "-", "index file, - for stdout; .yaml/.yml selects YAML, .zst/.lz4 adds compression")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rdf-protect index [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}
	if help, err := parseFlags(flagSet, args, stderr); help || err != nil {
		return err
	}

	format, options, err := in.resolve()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, in.verbose).With("command", "index")

	src, err := pipeline.OpenSource(in.input, format, options...)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("building type index", "input", in.input)
	ix, stats, err := pipeline.BuildIndex(ctx, src)
	if err != nil {
		return err
	}
	if err := typeindex.Save(output, ix); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	logger.Info("type index written",
		"output", output,
		"triples", stats.Triples,
		"indexed", stats.Indexed,
		"subjects", ix.Len(),
		"types", len(ix.Types()),
		"duration", stats.Duration,
	)
	return nil
}
