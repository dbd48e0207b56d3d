package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeLimitExceeded indicates a line or document exceeded the configured limit.
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	// ErrCodeQuotedTriple indicates an RDF-star quoted triple was encountered.
	ErrCodeQuotedTriple ErrorCode = "QUOTED_TRIPLE"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrLineTooLong indicates a line exceeded the configured limit.
	ErrLineTooLong = errors.New("rdf: line exceeds configured limit")
	// ErrQuotedTriple indicates an RDF-star quoted triple, which cannot be pseudonymized.
	ErrQuotedTriple = errors.New("rdf: quoted triples are not supported")
	// ErrDocumentTooLarge indicates a buffered document exceeded the configured limit.
	ErrDocumentTooLarge = errors.New("rdf: document exceeds configured limit")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrLineTooLong), errors.Is(err, ErrDocumentTooLarge):
		return ErrCodeLimitExceeded
	case errors.Is(err, ErrQuotedTriple):
		return ErrCodeQuotedTriple
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "ntriples", "jsonld")
	Statement string // Offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.excerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// excerpt shows the statement around the error column with a caret under it.
func (e *ParseError) excerpt() string {
	const maxExcerptLen = 80
	const contextLen = 40

	if e.Statement == "" {
		return ""
	}
	if e.Column <= 0 {
		if len(e.Statement) > maxExcerptLen {
			return e.Statement[:maxExcerptLen] + "..."
		}
		return e.Statement
	}

	start := min(e.Column-1, len(e.Statement))
	from := max(start-contextLen, 0)
	to := min(start+contextLen, len(e.Statement))

	text := e.Statement[from:to]
	caret := start - from
	if from > 0 {
		text = "..." + text
		caret += 3
	}
	if to < len(e.Statement) {
		text += "..."
	}
	return text + "\n  " + strings.Repeat(" ", caret) + "^"
}

// newParseError wraps err with the position at which it occurred.
func newParseError(format, statement string, line, column int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{
		Format:    format,
		Statement: statement,
		Line:      line,
		Column:    column,
		Err:       err,
	}
}
