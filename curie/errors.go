package curie

import "errors"

var (
	// ErrMalformedIdentifier indicates a value that is neither a bracketed
	// IRI nor a CURIE.
	ErrMalformedIdentifier = errors.New("curie: malformed identifier")
	// ErrInvalidIRI indicates a bracketed value whose interior is not an
	// absolute IRI.
	ErrInvalidIRI = errors.New("curie: invalid IRI")
	// ErrInvalidPrefixURI indicates a prefix table entry whose namespace is
	// not a valid full URI.
	ErrInvalidPrefixURI = errors.New("curie: invalid prefix namespace")
	// ErrPrefixNotAllowed indicates a reserved or syntactically invalid
	// prefix label.
	ErrPrefixNotAllowed = errors.New("curie: prefix label not allowed")
	// ErrUnknownPrefix indicates a CURIE whose label is not registered.
	ErrUnknownPrefix = errors.New("curie: unknown prefix")
	// ErrMissingDefault indicates a CURIE without label while no default
	// prefix is registered.
	ErrMissingDefault = errors.New("curie: no default prefix")
)
