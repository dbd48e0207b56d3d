package curie

import (
	"fmt"
	"sort"

	"github.com/geoknoesis/rdf-protect/rdf"
)

// PrefixMap resolves CURIE labels to namespace IRIs. The empty label holds
// the default prefix. A PrefixMap is read-only once built.
type PrefixMap struct {
	namespaces map[string]string
}

// Build validates table and returns the resulting PrefixMap. Values must be
// full URIs; labels must follow the prefix grammar and must not be "_".
func Build(table map[string]string) (*PrefixMap, error) {
	labels := make([]string, 0, len(table))
	for label := range table {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	m := &PrefixMap{namespaces: make(map[string]string, len(table))}
	for _, label := range labels {
		value := table[label]
		if label == BlankNodeLabel {
			return nil, fmt.Errorf("%w: %q is reserved for blank nodes", ErrPrefixNotAllowed, label)
		}
		if label != "" && !rdf.IsPrefixLabel(label) {
			return nil, fmt.Errorf("%w: %q", ErrPrefixNotAllowed, label)
		}
		if err := ValidateFullURI(value); err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", ErrInvalidPrefixURI, label, value, err)
		}
		m.namespaces[label] = Unwrap(value)
	}
	return m, nil
}

// Len returns the number of registered prefixes, default included.
func (m *PrefixMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.namespaces)
}

// Namespace returns the namespace IRI registered for label.
func (m *PrefixMap) Namespace(label string) (string, bool) {
	if m == nil {
		return "", false
	}
	ns, ok := m.namespaces[label]
	return ns, ok
}

// Labels returns the registered labels in sorted order.
func (m *PrefixMap) Labels() []string {
	if m == nil {
		return nil
	}
	labels := make([]string, 0, len(m.namespaces))
	for label := range m.namespaces {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Expand turns s into a bracketed full URI. Full URIs are returned
// unchanged, so expanding twice yields the same result as expanding once.
func (m *PrefixMap) Expand(s string) (string, error) {
	kind, err := Classify(s)
	if err != nil {
		return "", err
	}
	if kind == FullURI {
		return s, nil
	}
	prefix, local, err := Split(s)
	if err != nil {
		return "", err
	}
	ns, ok := m.Namespace(prefix)
	if !ok {
		if prefix == "" {
			return "", fmt.Errorf("%w: %q", ErrMissingDefault, s)
		}
		return "", fmt.Errorf("%w: %q in %q", ErrUnknownPrefix, prefix, s)
	}
	return Wrap(ns + local), nil
}

