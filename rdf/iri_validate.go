package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI validates an IRI string according to RFC 3987.
// Returns an error if the IRI is invalid, nil otherwise.
//
// Relative references are accepted. This is a structural check built on
// url.Parse plus the character exclusions of the IRIREF production; it is
// not a full RFC 3987 grammar.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}
	for i, r := range iri {
		if r <= 0x20 {
			return fmt.Errorf("invalid control or space character at position %d in IRI: %q", i, iri)
		}
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return fmt.Errorf("invalid character '%c' at position %d in IRI (should be percent-encoded): %s", r, i, iri)
		}
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}
	if parsed.Scheme == "" {
		if strings.HasPrefix(iri, "//") {
			return fmt.Errorf("relative IRI without scheme: %s", iri)
		}
		return nil
	}
	if !isSchemeStart(parsed.Scheme[0]) {
		return fmt.Errorf("scheme must start with a letter: %s", iri)
	}
	return nil
}

// ValidateAbsoluteIRI is ValidateIRI restricted to IRIs carrying a scheme.
func ValidateAbsoluteIRI(iri string) error {
	if err := ValidateIRI(iri); err != nil {
		return err
	}
	colon := strings.IndexByte(iri, ':')
	if colon <= 0 {
		return fmt.Errorf("IRI has no scheme: %s", iri)
	}
	for i := 0; i < colon; i++ {
		ch := iri[i]
		if i == 0 && !isSchemeStart(ch) {
			return fmt.Errorf("scheme must start with a letter: %s", iri)
		}
		if !isSchemeStart(ch) && !(ch >= '0' && ch <= '9') && ch != '+' && ch != '-' && ch != '.' {
			return fmt.Errorf("IRI appears to be missing a scheme: %s", iri)
		}
	}
	return nil
}

func isSchemeStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
