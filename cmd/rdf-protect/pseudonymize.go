package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/geoknoesis/rdf-protect/pipeline"
	"github.com/geoknoesis/rdf-protect/pseudo"
	"github.com/geoknoesis/rdf-protect/rdf"
	"github.com/geoknoesis/rdf-protect/rules"
	"github.com/geoknoesis/rdf-protect/typeindex"
)

func runPseudonymize(ctx context.Context, args []string, stderr io.Writer) (err error) {
	var (
		in         inputFlags
		output     string
		rulesPath  string
		indexPath  string
		secretPath string
		algorithm  string
		invert     bool
		workers    int
		batchSize  int
	)
	flagSet := pflag.NewFlagSet("pseudonymize", pflag.ContinueOnError)
	in.register(flagSet)
	flagSet.StringVarP(&output, "output", "o", "-", "output N-Triples file, - for stdout")
	flagSet.StringVarP(&rulesPath, "rules", "r", "", "rule file (YAML, or JSON with comments for .json/.jsonc)")
	flagSet.StringVarP(&indexPath, "index", "x", "", "type index written by 'rdf-protect index' (default: build it from the input)")
	flagSet.StringVarP(&secretPath, "secret", "s", "", "file holding the secret key material, - for stdin (default: random key)")
	flagSet.StringVar(&algorithm, "algorithm", string(pseudo.AlgorithmBLAKE3), "digest algorithm: blake3 or blake2b")
	flagSet.BoolVar(&invert, "invert", false, "pseudonymize every position the rules do not select")
	flagSet.IntVar(&workers, "workers", 1, "goroutines pseudonymizing each batch; output order is kept")
	flagSet.IntVar(&batchSize, "batch-size", pipeline.DefaultBatchSize, "triples per batch when --workers > 1")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rdf-protect pseudonymize -r RULES [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}
	if help, err := parseFlags(flagSet, args, stderr); help || err != nil {
		return err
	}

	if rulesPath == "" {
		return fmt.Errorf("--rules is required")
	}
	stdinUsers := 0
	for _, path := range []string{in.input, rulesPath, indexPath, secretPath} {
		if path == pipeline.StdioPath {
			stdinUsers++
		}
	}
	if stdinUsers > 1 {
		return fmt.Errorf("only one of --input, --rules, --index and --secret can read standard input")
	}

	format, options, err := in.resolve()
	if err != nil {
		return err
	}
	hashAlgorithm, err := pseudo.ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, in.verbose).With("command", "pseudonymize")

	rs, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("invert") {
		rs = rs.WithInvert(invert)
	}
	if secretPath == "" {
		logger.Warn("no secret given, using a random key; pseudonyms will not be reproducible")
	}
	key, err := pseudo.LoadKey(secretPath)
	if err != nil {
		return err
	}
	pseudonymizer, err := pseudo.NewFromKey(hashAlgorithm, key)
	if err != nil {
		return err
	}
	p, err := pipeline.New(logger, rs, pseudonymizer, pipeline.Options{Workers: workers, BatchSize: batchSize})
	if err != nil {
		return err
	}

	var open func() (rdf.TripleDecoder, error)
	if indexPath == "" {
		if open, err = pipeline.SourceOpener(in.input, format, options...); err != nil {
			return fmt.Errorf("--index is required when reading standard input: %w", err)
		}
	} else {
		ix, err := typeindex.Load(indexPath)
		if err != nil {
			return fmt.Errorf("loading index %s: %w", indexPath, err)
		}
		if err := p.UseIndex(ix); err != nil {
			return err
		}
	}

	sink, err := pipeline.CreateSink(output)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	if open != nil {
		_, err = p.Run(ctx, open, sink)
		return err
	}
	src, err := pipeline.OpenSource(in.input, format, options...)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = p.Transform(ctx, src, sink)
	return err
}
