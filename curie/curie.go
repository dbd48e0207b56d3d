// Package curie classifies, validates and expands the identifiers used in
// rule files: full IRIs written in angle brackets (<http://example.org/x>)
// and compact URIs (ex:x, or :x for the default prefix).
package curie

import (
	"fmt"
	"strings"

	"github.com/geoknoesis/rdf-protect/rdf"
)

// BlankNodeLabel is the prefix label reserved for blank node identifiers.
const BlankNodeLabel = "_"

// Kind tells full URIs and compact URIs apart.
type Kind int

const (
	// FullURI is an IRI enclosed in angle brackets.
	FullURI Kind = iota + 1
	// CompactURI is a prefix:local expression.
	CompactURI
)

func (k Kind) String() string {
	switch k {
	case FullURI:
		return "full URI"
	case CompactURI:
		return "CURIE"
	default:
		return "unknown"
	}
}

// IsFullURI reports whether s is enclosed in angle brackets.
func IsFullURI(s string) bool {
	return len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>'
}

// Wrap encloses iri in angle brackets.
func Wrap(iri string) string {
	return "<" + iri + ">"
}

// Unwrap strips the angle brackets of a full URI. Other values are
// returned unchanged.
func Unwrap(s string) string {
	if IsFullURI(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// Classify reports whether s is a full URI or a CURIE.
func Classify(s string) (Kind, error) {
	if IsFullURI(s) {
		inner := s[1 : len(s)-1]
		if inner == "" || strings.ContainsAny(inner, "<>") {
			return 0, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
		}
		return FullURI, nil
	}
	if _, _, err := Split(s); err != nil {
		return 0, err
	}
	return CompactURI, nil
}

// Split breaks a CURIE into its prefix label and local part. An empty label
// denotes the default prefix.
func Split(s string) (prefix, local string, err error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return "", "", fmt.Errorf("%w: %q has no prefix separator", ErrMalformedIdentifier, s)
	}
	prefix, local = s[:colon], s[colon+1:]
	if prefix != "" && !rdf.IsPrefixLabel(prefix) {
		return "", "", fmt.Errorf("%w: %q has an invalid prefix", ErrMalformedIdentifier, s)
	}
	if local == "" || local[0] == '/' {
		return "", "", fmt.Errorf("%w: %q has an invalid local part", ErrMalformedIdentifier, s)
	}
	if strings.ContainsAny(local, "<> \t\r\n") {
		return "", "", fmt.Errorf("%w: %q has an invalid local part", ErrMalformedIdentifier, s)
	}
	return prefix, local, nil
}

// ValidateFullURI checks that s is a bracketed absolute IRI.
func ValidateFullURI(s string) error {
	kind, err := Classify(s)
	if err != nil {
		return err
	}
	if kind != FullURI {
		return fmt.Errorf("%w: %q is not a full URI", ErrMalformedIdentifier, s)
	}
	if err := rdf.ValidateAbsoluteIRI(Unwrap(s)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIRI, err)
	}
	return nil
}
