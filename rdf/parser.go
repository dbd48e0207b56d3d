package rdf

import (
	"context"
	"io"
)

// TripleDecoder streams RDF triples from an input. Next returns io.EOF
// once the input is exhausted.
type TripleDecoder interface {
	Next() (Triple, error)
	Err() error
	Close() error
}

// TripleEncoder streams RDF triples to an output.
type TripleEncoder interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// TripleHandler processes triples in push mode.
type TripleHandler interface {
	Handle(Triple) error
}

// TripleHandlerFunc adapts a function to a TripleHandler.
type TripleHandlerFunc func(Triple) error

// Handle calls the underlying function.
func (h TripleHandlerFunc) Handle(t Triple) error { return h(t) }

// NewTripleDecoder returns a pull-style decoder for the given format.
func NewTripleDecoder(r io.Reader, format Format, opts ...DecodeOption) (TripleDecoder, error) {
	options := DefaultDecodeOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options = normalizeDecodeOptions(options)

	switch format {
	case FormatNTriples:
		return newNTriplesDecoder(r, options), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewTripleEncoder returns a push-style encoder. Only N-Triples is
// supported as output.
func NewTripleEncoder(w io.Writer, format Format) (TripleEncoder, error) {
	switch format {
	case FormatNTriples:
		return newNTriplesEncoder(w), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseTriples decodes r and streams every triple to handler, stopping at
// the first decode or handler error.
// If ctx is nil, context.Background() is used as the default.
func ParseTriples(ctx context.Context, r io.Reader, format Format, handler TripleHandler, opts ...DecodeOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dec, err := NewTripleDecoder(r, format, append(opts, WithContext(ctx))...)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		triple, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler.Handle(triple); err != nil {
			return err
		}
	}
}
