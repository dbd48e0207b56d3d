package pipeline

import (
	"context"
	"errors"

	"github.com/geoknoesis/rdf-protect/curie"
	"github.com/geoknoesis/rdf-protect/pseudo"
	"github.com/geoknoesis/rdf-protect/rdf"
	"github.com/geoknoesis/rdf-protect/rules"
	"github.com/geoknoesis/rdf-protect/typeindex"
)

// ErrorCode classifies the error that ended a run.
type ErrorCode string

const (
	// ErrCodeIO indicates a file that could not be opened, read or written.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeSyntax indicates malformed input triples.
	ErrCodeSyntax ErrorCode = "SYNTAX_ERROR"
	// ErrCodeConfig indicates rules that failed to load or normalize.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrCodeSecret indicates unusable secret material.
	ErrCodeSecret ErrorCode = "SECRET_ERROR"
	// ErrCodeIndexFormat indicates a persisted type index that failed to decode.
	ErrCodeIndexFormat ErrorCode = "INDEX_FORMAT_ERROR"
	// ErrCodeCanceled indicates the run was canceled.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeState indicates a pipeline method called out of order.
	ErrCodeState ErrorCode = "STATE_ERROR"
)

// ErrInvalidState indicates a pipeline method called in the wrong state.
var ErrInvalidState = errors.New("pipeline: invalid state")

// Code returns the error code for err. Errors that match no other class
// are reported as ErrCodeIO. Returns empty string for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var configErr *rules.ConfigError
	var parseErr *rdf.ParseError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeCanceled
	case errors.Is(err, ErrInvalidState):
		return ErrCodeState
	case errors.As(err, &configErr),
		errors.Is(err, curie.ErrMalformedIdentifier),
		errors.Is(err, curie.ErrInvalidIRI),
		errors.Is(err, curie.ErrInvalidPrefixURI),
		errors.Is(err, curie.ErrPrefixNotAllowed),
		errors.Is(err, curie.ErrUnknownPrefix),
		errors.Is(err, curie.ErrMissingDefault):
		return ErrCodeConfig
	case errors.Is(err, pseudo.ErrSecretTooShort):
		return ErrCodeSecret
	case errors.Is(err, typeindex.ErrFormat):
		return ErrCodeIndexFormat
	case errors.As(err, &parseErr),
		errors.Is(err, rdf.ErrQuotedTriple),
		errors.Is(err, rdf.ErrUnsupportedFormat):
		return ErrCodeSyntax
	}
	return ErrCodeIO
}
