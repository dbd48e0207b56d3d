// Package pseudo replaces RDF terms with keyed, one-way digests.
//
// Named nodes keep their namespace: everything up to the last '/' or '#'
// is preserved and only the local part is replaced, so
// <http://example.org/Person/42> becomes <http://example.org/Person/9f2c...>.
// Literals become simple literals holding the digest of their lexical
// form. Blank nodes are left alone.
package pseudo

import (
	"strings"

	"github.com/geoknoesis/rdf-protect/rdf"
)

// Pseudonymizer applies a Hasher to terms and triples. It holds no
// mutable state and is safe for concurrent use when its Hasher is.
type Pseudonymizer struct {
	hasher Hasher
}

// New returns a Pseudonymizer backed by hasher.
func New(hasher Hasher) *Pseudonymizer {
	return &Pseudonymizer{hasher: hasher}
}

// NewFromKey returns a Pseudonymizer for algorithm keyed with key.
func NewFromKey(algorithm Algorithm, key Key) (*Pseudonymizer, error) {
	hasher, err := NewHasher(algorithm, key)
	if err != nil {
		return nil, err
	}
	return New(hasher), nil
}

// NamedNode keeps n up to and including its last '/' or '#' and replaces
// the rest with the digest of the whole IRI. An IRI without either
// separator keeps its scheme up to the last ':'.
func (p *Pseudonymizer) NamedNode(n rdf.IRI) rdf.IRI {
	cut := strings.LastIndexAny(n.Value, "/#")
	if cut < 0 {
		cut = strings.LastIndexByte(n.Value, ':')
	}
	return rdf.IRI{Value: n.Value[:cut+1] + p.hasher.Pseudonymize([]byte(n.Value))}
}

// Literal returns a simple literal holding the digest of l's lexical
// form. Language and datatype are dropped.
func (p *Pseudonymizer) Literal(l rdf.Literal) rdf.Literal {
	return rdf.Literal{Lexical: p.hasher.Pseudonymize([]byte(l.Lexical))}
}

// BlankNode returns b unchanged.
func (p *Pseudonymizer) BlankNode(b rdf.BlankNode) rdf.BlankNode {
	return b
}

// Term dispatches to NamedNode, Literal or BlankNode.
func (p *Pseudonymizer) Term(term rdf.Term) rdf.Term {
	switch value := term.(type) {
	case rdf.IRI:
		return p.NamedNode(value)
	case rdf.Literal:
		return p.Literal(value)
	case rdf.BlankNode:
		return p.BlankNode(value)
	default:
		return term
	}
}

// Triple pseudonymizes the positions of t selected by mask. A selected
// predicate is treated as a named node.
func (p *Pseudonymizer) Triple(t rdf.Triple, mask rdf.TripleMask) rdf.Triple {
	if mask.Has(rdf.MaskSubject) {
		t.S = p.Term(t.S)
	}
	if mask.Has(rdf.MaskPredicate) {
		t.P = p.NamedNode(t.P)
	}
	if mask.Has(rdf.MaskObject) {
		t.O = p.Term(t.O)
	}
	return t
}
