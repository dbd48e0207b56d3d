package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/geoknoesis/rdf-protect/rdf"
)

// StdioPath is the path that denotes standard input or standard output.
const StdioPath = "-"

type fileDecoder struct {
	rdf.TripleDecoder
	file io.Closer
}

func (d *fileDecoder) Close() error {
	return errors.Join(d.TripleDecoder.Close(), d.file.Close())
}

type fileEncoder struct {
	rdf.TripleEncoder
	file io.Closer
}

func (e *fileEncoder) Close() error {
	return errors.Join(e.TripleEncoder.Close(), e.file.Close())
}

// OpenSource opens path as a triple source. An empty format is inferred
// from the file name, or from the first bytes of standard input. A path of
// "-" reads standard input, which can only be consumed once.
func OpenSource(path string, format rdf.Format, opts ...rdf.DecodeOption) (rdf.TripleDecoder, error) {
	if path == StdioPath {
		var input io.Reader = os.Stdin
		if format == "" {
			format, input = rdf.DetectFormat(input)
		}
		return rdf.NewTripleDecoder(input, format, opts...)
	}
	if format == "" {
		format = rdf.FormatFromPath(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	dec, err := rdf.NewTripleDecoder(file, format, opts...)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &fileDecoder{TripleDecoder: dec, file: file}, nil
}

// SourceOpener returns a function that opens path afresh on every call,
// for use with Pipeline.Run.
func SourceOpener(path string, format rdf.Format, opts ...rdf.DecodeOption) (func() (rdf.TripleDecoder, error), error) {
	if path == StdioPath {
		return nil, fmt.Errorf("standard input cannot be read twice; build an index first")
	}
	return func() (rdf.TripleDecoder, error) {
		return OpenSource(path, format, opts...)
	}, nil
}

// CreateSink creates path as an N-Triples sink. A path of "-" writes to
// standard output. Closing the sink flushes it and closes the file.
func CreateSink(path string) (rdf.TripleEncoder, error) {
	if path == StdioPath {
		return rdf.NewTripleEncoder(os.Stdout, rdf.FormatNTriples)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	enc, err := rdf.NewTripleEncoder(file, rdf.FormatNTriples)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &fileEncoder{TripleEncoder: enc, file: file}, nil
}
