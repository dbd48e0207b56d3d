package rdf

import (
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	// FormatNTriples is line-based N-Triples, the only output format.
	FormatNTriples Format = "ntriples"
	// FormatJSONLD is JSON-LD, accepted as input only.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatFromPath infers a format from a file extension. Paths without a
// recognised extension, including "-" for stdin, are N-Triples.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonld", ".json":
		return FormatJSONLD
	default:
		return FormatNTriples
	}
}
