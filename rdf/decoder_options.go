package rdf

import "context"

const (
	// DefaultMaxLineBytes bounds a single N-Triples line.
	DefaultMaxLineBytes = 1 << 20
	// DefaultMaxDocumentBytes bounds a buffered JSON-LD document.
	DefaultMaxDocumentBytes = 256 << 20
)

// DecodeOptions configures parser behavior and limits.
// Zero values use defaults. Use negative values to disable specific limits.
type DecodeOptions struct {
	// MaxLineBytes limits the length of one N-Triples line.
	MaxLineBytes int
	// MaxDocumentBytes limits the size of a JSON-LD document.
	MaxDocumentBytes int64
	// BaseIRI resolves relative IRIs in JSON-LD input.
	BaseIRI string
	// Context provides cancellation for decoding work.
	Context context.Context
}

// DecodeOption configures decoder behavior using functional options.
type DecodeOption func(*DecodeOptions)

// WithMaxLineBytes sets the maximum line size limit.
func WithMaxLineBytes(maxBytes int) DecodeOption {
	return func(opts *DecodeOptions) {
		opts.MaxLineBytes = maxBytes
	}
}

// WithMaxDocumentBytes sets the maximum JSON-LD document size.
func WithMaxDocumentBytes(maxBytes int64) DecodeOption {
	return func(opts *DecodeOptions) {
		opts.MaxDocumentBytes = maxBytes
	}
}

// WithBaseIRI sets the base IRI used to resolve relative JSON-LD references.
func WithBaseIRI(base string) DecodeOption {
	return func(opts *DecodeOptions) {
		opts.BaseIRI = base
	}
}

// WithContext sets the context for cancellation.
func WithContext(ctx context.Context) DecodeOption {
	return func(opts *DecodeOptions) {
		opts.Context = ctx
	}
}

// DefaultDecodeOptions returns safe defaults for parser limits.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxLineBytes:     DefaultMaxLineBytes,
		MaxDocumentBytes: DefaultMaxDocumentBytes,
	}
}

func normalizeDecodeOptions(opts DecodeOptions) DecodeOptions {
	if opts.MaxLineBytes == 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}
	if opts.MaxDocumentBytes == 0 {
		opts.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return opts
}
